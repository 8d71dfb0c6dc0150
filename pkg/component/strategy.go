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

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
)

const (
	// NameAttribute marks a container and holds the component name.
	NameAttribute = "data-component"

	// ConfigAttribute marks the script element holding a container's JSON config.
	ConfigAttribute = "data-component-config"
)

// Disposer releases whatever a mounted component acquired.
type Disposer func()

// InitFunc mounts a component into its container. config is the decoded
// JSON payload, or nil when the container has none.
type InitFunc func(ctx context.Context, el *dom.Element, config any) (Disposer, error)

// Module is what a deferred loader produces.
type Module struct {
	Default InitFunc
}

// Loader produces a deferred component's module.
type Loader func(ctx context.Context) (*Module, error)

// Strategy describes how a registered component becomes available.
// It is implemented only by Eager and Deferred.
type Strategy interface {
	// Kind returns "eager" or "deferred".
	Kind() string
	isStrategy()
}

// Eager holds an implementation that is available immediately.
type Eager struct {
	Init InitFunc
}

// Kind implements Strategy.
func (Eager) Kind() string { return "eager" }

func (Eager) isStrategy() {}

// Deferred holds a loader invoked only when a matching container is mounted.
type Deferred struct {
	Load Loader
}

// Kind implements Strategy.
func (Deferred) Kind() string { return "deferred" }

func (Deferred) isStrategy() {}

func noop() {}
