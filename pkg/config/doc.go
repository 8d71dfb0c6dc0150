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

// Package config loads the site configuration shared by the CLI and the
// server.
//
// A configuration file is optional. When given it may be TOML (.toml) or
// YAML (.yaml, .yml):
//
//	name = "cdhweb"
//	doc_root = "./public"
//	storage_file = "./storage.yaml"
//	isolate = true
//	loader_timeout_seconds = 10
//
//	[server]
//	port = 8080
//	rate_limit = 100
//	rate_limit_burst = 200
//	shutdown_timeout_seconds = 30
//
// Environment variables override the file: PORT, LOG_LEVEL,
// SHUTDOWN_TIMEOUT_SECONDS and CDH_DOC_ROOT.
package config
