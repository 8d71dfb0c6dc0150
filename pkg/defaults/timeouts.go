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

package defaults

import "time"

const (
	// LoaderTimeout bounds a single deferred component load.
	// Loaders should respect parent context deadlines when shorter.
	LoaderTimeout = 10 * time.Second

	// MountTimeout bounds one mount pass over a page.
	// Should exceed LoaderTimeout so a slow load surfaces as its own error.
	MountTimeout = 30 * time.Second
)

const (
	// PageHandlerTimeout is the timeout for rendering one page request.
	PageHandlerTimeout = 45 * time.Second

	// PageCacheMaxEntries caps the number of parsed page sources kept in memory.
	PageCacheMaxEntries = 256
)

const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

const (
	// StorageCookieMaxAge is how long dismissed-alert state survives in the
	// visitor's browser.
	StorageCookieMaxAge = 365 * 24 * time.Hour
)
