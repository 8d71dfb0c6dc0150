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

// Package defaults provides centralized configuration constants for the site.
//
// This package defines timeout values and limits used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
//   - Mount timeouts: for deferred component loads and whole mount passes
//   - Handler timeouts: for HTTP request processing
//   - Server timeouts: for HTTP server configuration
//
// # Usage
//
//	import "github.com/Princeton-CDH/cdhweb-components/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.MountTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Deferred loads: 10s, respects parent context deadline
//   - Mount pass: 30s for an entire page
//   - Server shutdown: 30s for graceful shutdown
package defaults
