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

// Package component discovers declaratively marked containers in a page and
// mounts an interactive implementation into each one.
//
// A container is any element carrying the data-component attribute. Its value
// names a component in a Registry, which maps the name to one of two
// strategies:
//
//   - Eager: the implementation is linked into the binary and invoked directly.
//   - Deferred: a Loader produces the implementation on demand. The loader is
//     never called unless a container naming it is discovered and filtered in,
//     so heavyweight components cost nothing on pages that do not use them.
//
// Configuration for a container is an optional JSON payload inside a
// <script type="application/json" data-component-config> child.
//
// # Mount Pass
//
// Mounter.MountAll runs one pass over a root element:
//
//  1. Query every marked descendant of root.
//  2. Drop containers nested inside another container that is itself within
//     root (ShouldMountTopLevel). The owning component rescans its own subtree
//     when it is ready.
//  3. For each survivor, concurrently: resolve the name, extract the config,
//     load the implementation, invoke it.
//  4. Record each returned Disposer in the Ledger.
//
// The join waits for every container to settle. In strict mode (the default)
// the first failure fails the batch; with WithIsolation(true) failures are
// collected into a *BatchError and every successful mount is still returned.
//
// # Registration
//
// Widget packages register themselves from init():
//
//	func init() {
//	    component.MustRegister("alert-banner", component.Eager{Init: Mount})
//	}
//
// Import pkg/component/widgets to link every site widget.
//
// # Cleanup
//
// Disposers are held by a Ledger owned by the caller. Ledger.DisposeAll runs
// each exactly once in recording order. Nothing disposes a component when its
// container leaves the document; callers decide when a page is finished.
package component
