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

import "context"

type mounterKey struct{}

// WithMounter returns a context carrying m.
func WithMounter(ctx context.Context, m *Mounter) context.Context {
	return context.WithValue(ctx, mounterKey{}, m)
}

// MounterFromContext returns the Mounter that invoked the current
// implementation. Composite components use it to mount their own children.
func MounterFromContext(ctx context.Context) (*Mounter, bool) {
	m, ok := ctx.Value(mounterKey{}).(*Mounter)
	return m, ok && m != nil
}
