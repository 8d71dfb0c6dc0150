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

// Package api is the entry point of the cdhwebd page server.
//
// # Usage
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/Princeton-CDH/cdhweb-components/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Registering every site component with the global registry
//   - Loading the site configuration named by CDH_CONFIG
//   - Delegating server lifecycle management to pkg/server
//
// # Environment Variables
//
//	CDH_CONFIG     Site configuration file (toml, yaml or json)
//	CDH_DOC_ROOT   Directory holding the page sources
//	PORT           Port to listen on
//	LOG_LEVEL      Logging verbosity
package api
