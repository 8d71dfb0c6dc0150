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

// Package server serves site pages with their components mounted
// server-side.
//
// Each request for an HTML page parses the page source from the document
// root, mounts its components in isolated mode against the global registry
// with the visitor's cookie storage, and renders the result. A component
// that fails to mount is logged and counted; the rest of the page is still
// served. Page sources are cached in memory and evicted when fsnotify
// reports a change under the document root.
//
// # Architecture
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking (X-Request-Id, github.com/google/uuid)
//   - Panic recovery for resilience
//   - Prometheus metrics for requests, pages and components
//   - Graceful shutdown on SIGINT/SIGTERM
//   - Health and readiness probes
//
// # Usage
//
//	cfg := server.NewConfig()
//	cfg.DocRoot = "./public"
//	if err := server.RunWithConfig(cfg); err != nil {
//		panic(err)
//	}
//
// # API Endpoints
//
//	GET  /{path}                    hydrated page ({path}.html or {path}/index.html)
//	GET  /health                    liveness probe
//	GET  /ready                     readiness probe
//	GET  /metrics                   Prometheus metrics
//	GET  /v1/components             registered components
//	POST /v1/alerts/dismiss?id=...  remember a dismissed alert banner
//
// # Error Responses
//
// API errors are JSON:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "requestId": "...",
//	  "timestamp": "...",
//	  "retryable": true
//	}
package server
