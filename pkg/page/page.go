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

package page

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/defaults"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

// Options configures a hydration.
type Options struct {
	// Registry resolves component names. Nil means a copy of the global registry.
	Registry *component.Registry

	// Storage backs the document's key-value store. Nil means in-memory.
	Storage storage.Store

	// Isolate keeps one failing component from failing the page.
	Isolate bool

	// Location is the request path the page is rendered for.
	Location string

	// Timeout bounds the mount pass. Zero means defaults.MountTimeout.
	Timeout time.Duration

	// LoaderTimeout bounds each deferred loader. Zero means defaults.LoaderTimeout.
	LoaderTimeout time.Duration

	// Logger receives mount diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Result is a hydrated document.
type Result struct {
	Document *dom.Document
	Ledger   *component.Ledger
	Mounted  int
	Failures []*component.Error
	Duration time.Duration
}

// Hydrate parses r and mounts its components.
func Hydrate(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	start := time.Now()

	var domOpts []dom.Option
	if opts.Storage != nil {
		domOpts = append(domOpts, dom.WithStorage(opts.Storage))
	}
	if opts.Location != "" {
		domOpts = append(domOpts, dom.WithLocation(opts.Location))
	}
	doc, err := dom.Parse(r, domOpts...)
	if err != nil {
		return nil, err
	}

	reg := opts.Registry
	if reg == nil {
		reg = component.NewFromGlobal()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaults.MountTimeout
	}

	ledger := component.NewLedger()
	mopts := []component.MounterOption{
		component.WithLedger(ledger),
		component.WithIsolation(opts.Isolate),
		component.WithLogger(opts.Logger),
	}
	if opts.LoaderTimeout > 0 {
		mopts = append(mopts, component.WithLoaderTimeout(opts.LoaderTimeout))
	}
	mounter := component.NewMounter(reg, mopts...)

	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := &Result{Document: doc, Ledger: ledger}
	_, err = mounter.MountAll(mctx, doc.Body())
	res.Duration = time.Since(start)
	res.Mounted = ledger.Len()

	var batch *component.BatchError
	if stderrors.As(err, &batch) && opts.Isolate {
		res.Failures = batch.Failures
		err = nil
	}
	if err != nil {
		return res, err
	}

	slog.Debug("page hydrated",
		"location", doc.Location(),
		"mounted", res.Mounted,
		"failed", len(res.Failures),
		"duration", res.Duration.Round(time.Microsecond),
	)
	return res, nil
}

// HydrateFile hydrates the HTML file at path.
func HydrateFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to open page", err,
			map[string]any{"path": path})
	}
	defer f.Close()
	return Hydrate(ctx, f, opts)
}

// Render writes the hydrated document.
func (r *Result) Render(w io.Writer) error {
	return r.Document.Render(w)
}
