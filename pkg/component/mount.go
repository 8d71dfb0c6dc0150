// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package component

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Princeton-CDH/cdhweb-components/pkg/defaults"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
)

// Mounter runs mount passes against a Registry and records every mounted
// container in its Ledger.
type Mounter struct {
	registry      *Registry
	ledger        *Ledger
	isolate       bool
	loaderTimeout time.Duration
	logger        *slog.Logger
}

// MounterOption configures a Mounter.
type MounterOption func(*Mounter)

// WithLedger sets the ledger mounted containers are recorded in.
func WithLedger(l *Ledger) MounterOption {
	return func(m *Mounter) {
		if l != nil {
			m.ledger = l
		}
	}
}

// WithIsolation makes a failing container not fail the pass. Failures are
// collected into a *BatchError returned next to the disposers of the
// containers that did mount.
func WithIsolation(isolate bool) MounterOption {
	return func(m *Mounter) {
		m.isolate = isolate
	}
}

// WithLoaderTimeout bounds how long a deferred loader may run.
// Zero disables the bound.
func WithLoaderTimeout(d time.Duration) MounterOption {
	return func(m *Mounter) {
		m.loaderTimeout = d
	}
}

// WithLogger sets the logger used for mount diagnostics.
func WithLogger(l *slog.Logger) MounterOption {
	return func(m *Mounter) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMounter creates a Mounter. Without WithLedger it owns a fresh Ledger.
func NewMounter(reg *Registry, opts ...MounterOption) *Mounter {
	m := &Mounter{
		registry:      reg,
		ledger:        NewLedger(),
		loaderTimeout: defaults.LoaderTimeout,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	return m
}

// Ledger returns the ledger this mounter records into.
func (m *Mounter) Ledger() *Ledger {
	return m.ledger
}

// Registry returns the registry this mounter resolves names against.
func (m *Mounter) Registry() *Registry {
	return m.registry
}

// Isolated reports whether failures are isolated per container.
func (m *Mounter) Isolated() bool {
	return m.isolate
}

// Discover returns the containers under root that a pass over root mounts,
// in document order.
func Discover(root *dom.Element) []*dom.Element {
	candidates := root.QueryAll(isContainer)
	out := make([]*dom.Element, 0, len(candidates))
	for _, el := range candidates {
		if ShouldMountTopLevel(el, root) {
			out = append(out, el)
		}
	}
	return out
}

// MountAll mounts every top-level container under root concurrently and
// waits for all of them to settle.
//
// By default the first failure is returned once every container has
// settled; disposers of the containers that did mount stay in the ledger.
// With WithIsolation the disposers of every mounted container are returned
// in document order together with a *BatchError describing the failures.
func (m *Mounter) MountAll(ctx context.Context, root *dom.Element) ([]Disposer, error) {
	if root == nil {
		return nil, nil
	}

	start := time.Now()
	containers := Discover(root)

	m.logger.Debug("mount pass started",
		"root", root.String(),
		"containers", len(containers),
		"isolated", m.isolate,
	)

	mctx := WithMounter(ctx, m)
	disposers := make([]Disposer, len(containers))
	failures := make([]*Error, len(containers))

	var g errgroup.Group
	for i, el := range containers {
		g.Go(func() error {
			d, err := m.mountOne(mctx, el)
			if err != nil {
				failures[i] = err
				if !m.isolate {
					return err
				}
				return nil
			}
			disposers[i] = d
			return nil
		})
	}
	err := g.Wait()

	mounted := make([]Disposer, 0, len(containers))
	for _, d := range disposers {
		if d != nil {
			mounted = append(mounted, d)
		}
	}
	var batch []*Error
	for _, f := range failures {
		if f != nil {
			batch = append(batch, f)
		}
	}

	m.logger.Debug("mount pass complete",
		"root", root.String(),
		"mounted", len(mounted),
		"failed", len(batch),
		"duration", time.Since(start).Round(time.Microsecond),
	)

	if err != nil {
		return nil, err
	}
	if len(batch) > 0 {
		return mounted, &BatchError{Failures: batch}
	}
	return mounted, nil
}

// mountOne takes a single container from Mounting to Mounted.
func (m *Mounter) mountOne(ctx context.Context, el *dom.Element) (Disposer, *Error) {
	start := time.Now()
	name, _ := el.Attr(NameAttribute)

	d, err := m.initialize(ctx, name, el)
	if err != nil {
		label := name
		if label == "" {
			label = "unnamed"
		}
		mountsTotal.WithLabelValues(label, resultFailed).Inc()
		m.logger.Error("component mount failed",
			"component", name,
			"container", el.String(),
			"kind", err.Kind.String(),
			"error", err,
		)
		return nil, err
	}

	rec := newRecord(name, el)
	rec.mounted(d)
	m.ledger.add(rec)

	elapsed := time.Since(start)
	mountsTotal.WithLabelValues(name, resultMounted).Inc()
	mountDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	m.logger.Debug("component mounted",
		"component", name,
		"container", el.String(),
		"duration", elapsed.Round(time.Microsecond),
	)

	return rec.Disposer(), nil
}

func (m *Mounter) initialize(ctx context.Context, name string, el *dom.Element) (Disposer, *Error) {
	if name == "" {
		return nil, newError(KindConfiguration, "", el,
			fmt.Sprintf("container requires %s attribute", NameAttribute), nil)
	}

	strategy, err := m.registry.Resolve(name)
	if err != nil {
		rerr := err.(*Error)
		rerr.Container = el
		return nil, rerr
	}

	config, err := ExtractConfig(el)
	if err != nil {
		return nil, err.(*Error)
	}

	fn, lerr := m.load(ctx, name, el, strategy)
	if lerr != nil {
		return nil, lerr
	}

	return invoke(ctx, name, el, fn, config)
}

func (m *Mounter) load(ctx context.Context, name string, el *dom.Element, s Strategy) (InitFunc, *Error) {
	switch v := s.(type) {
	case Eager:
		return v.Init, nil
	case *Eager:
		return v.Init, nil
	case Deferred:
		return m.loadDeferred(ctx, name, el, v.Load)
	case *Deferred:
		return m.loadDeferred(ctx, name, el, v.Load)
	default:
		return nil, newError(KindImplementation, name, el, fmt.Sprintf("unsupported strategy %T", s), nil)
	}
}

func (m *Mounter) loadDeferred(ctx context.Context, name string, el *dom.Element, load Loader) (fn InitFunc, lerr *Error) {
	loaderInvocations.WithLabelValues(name).Inc()

	if m.loaderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.loaderTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			fn = nil
			lerr = newError(KindImplementation, name, el, "component loader panicked", fmt.Errorf("%v", r))
		}
	}()

	mod, err := load(ctx)
	if err != nil {
		return nil, newError(KindImplementation, name, el, "failed to load component", err)
	}
	if mod == nil || mod.Default == nil {
		return nil, newError(KindImplementation, name, el, "loaded module has no default implementation", nil)
	}
	return mod.Default, nil
}

func invoke(ctx context.Context, name string, el *dom.Element, fn InitFunc, config any) (d Disposer, ierr *Error) {
	defer func() {
		if r := recover(); r != nil {
			d = nil
			ierr = newError(KindImplementation, name, el, "component implementation panicked", fmt.Errorf("%v", r))
		}
	}()

	d, err := fn(ctx, el, config)
	if err != nil {
		return nil, newError(KindImplementation, name, el, "component failed to initialize", err)
	}
	if d == nil {
		d = noop
	}
	return d, nil
}
