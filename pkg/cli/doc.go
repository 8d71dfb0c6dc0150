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

// Package cli implements the cdhweb command-line interface.
//
// # Overview
//
// cdhweb mounts the components declared in site HTML pages outside a
// browser: it discovers containers marked with data-component, resolves
// them against the registry, runs their initializers and reports what
// mounted. It also serves pages with their components mounted.
//
// # Commands
//
// mount - Mount the components of a page:
//
//	cdhweb mount page.html [--html hydrated.html] [--output report.yaml] [--format yaml|json|table]
//
// Parses the page, mounts every top-level container and writes a report of
// the mounted and failed containers. With --isolate one failing container
// does not fail the run. With --storage the page's key-value storage is
// backed by a YAML file, so dismissed alerts stay dismissed across runs.
//
// components - List registered components:
//
//	cdhweb components [--format table]
//
// serve - Serve hydrated pages over HTTP:
//
//	cdhweb serve --doc-root ./public [--port 8080]
//
// # Global Flags
//
//	--config, -c     Site configuration file (toml, yaml or json)
//	--log-level, -l  Log level (debug, info, warn, error)
//	--debug          Shorthand for --log-level debug
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Environment Variables
//
//	LOG_LEVEL             Set logging verbosity
//	PORT                  Server port
//	CDH_DOC_ROOT          Server document root
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, a component failed to mount)
package cli
