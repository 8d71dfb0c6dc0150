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

import "github.com/Princeton-CDH/cdhweb-components/pkg/dom"

// ShouldMountTopLevel reports whether a mount pass over root should mount el
// directly.
//
// el is skipped when its nearest marked ancestor sits inside root, because
// that ancestor owns el and rescans its own subtree once it has rendered.
// An ancestor that is root itself, or lies above root, was not mounted by
// this pass, so el is mounted.
func ShouldMountTopLevel(el, root *dom.Element) bool {
	parent := el.Parent()
	if parent == nil {
		return true
	}
	owner := parent.Closest(isContainer)
	if owner == nil {
		return true
	}
	return owner.Contains(root)
}
