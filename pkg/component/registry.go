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
	"fmt"
	"sort"
	"sync"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// Registry maps component names to strategies. It is append-only: a name
// registered once cannot be replaced or removed.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Strategy
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Strategy),
	}
}

// Register adds a component. It fails for an empty name, an incomplete
// strategy, or a name that is already registered.
func (r *Registry) Register(name string, s Strategy) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "component name cannot be empty")
	}
	if err := validateStrategy(s); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid component strategy", err,
			map[string]any{"component": name})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("component %q already registered", name),
			map[string]any{"component": name})
	}
	r.entries[name] = s
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, s Strategy) {
	if err := r.Register(name, s); err != nil {
		panic(err)
	}
}

func validateStrategy(s Strategy) error {
	switch v := s.(type) {
	case Eager:
		if v.Init == nil {
			return fmt.Errorf("eager strategy has no Init function")
		}
	case *Eager:
		if v == nil || v.Init == nil {
			return fmt.Errorf("eager strategy has no Init function")
		}
	case Deferred:
		if v.Load == nil {
			return fmt.Errorf("deferred strategy has no Load function")
		}
	case *Deferred:
		if v == nil || v.Load == nil {
			return fmt.Errorf("deferred strategy has no Load function")
		}
	default:
		return fmt.Errorf("unsupported strategy %T", s)
	}
	return nil
}

// Resolve returns the strategy registered under name. An unknown name yields
// an *Error of KindResolution whose message quotes the name.
func (r *Registry) Resolve(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.entries[name]
	if !ok {
		return nil, newError(KindResolution, name, nil,
			fmt.Sprintf("unrecognised component %s=%q", NameAttribute, name), nil)
	}
	return s, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered components.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Global registry for site widgets.
// Widget packages register themselves via init() functions.
var global = NewRegistry()

// Register registers a component in the global registry.
func Register(name string, s Strategy) error {
	return global.Register(name, s)
}

// MustRegister registers a component in the global registry, panicking on error.
// Use this in init() functions where registration must succeed.
func MustRegister(name string, s Strategy) {
	global.MustRegister(name, s)
}

// NewFromGlobal returns a new Registry holding every globally registered
// component. Callers may add page-specific components to the copy.
func NewFromGlobal() *Registry {
	global.mu.RLock()
	defer global.mu.RUnlock()

	reg := NewRegistry()
	for name, s := range global.entries {
		reg.entries[name] = s
	}
	return reg
}

// GlobalNames returns the globally registered names, sorted.
func GlobalNames() []string {
	return global.Names()
}
