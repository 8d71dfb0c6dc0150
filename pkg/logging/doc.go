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

// Package logging configures structured logging for the cdhweb binaries.
//
// All output is JSON on stderr via log/slog. Every record carries the
// module (binary) name and build version:
//
//	{"time":"...","level":"INFO","msg":"page mounted","module":"cdhweb","version":"v1.4.0","summary":"3 mounted, 0 failed in 1.2ms"}
//
// # Usage
//
// Install the default logger once at startup:
//
//	logging.SetDefaultStructuredLogger("cdhwebd", version)             // level from LOG_LEVEL
//	logging.SetDefaultStructuredLoggerWithLevel("cdhweb", version, lvl) // explicit level
//
// Packages then log through slog directly:
//
//	slog.Debug("component mounted", "component", name, "duration", d)
//
// # Levels
//
// Level names are case-insensitive: debug, info, warn (or warning) and
// error. Anything else means info. At debug, records include the source
// location.
//
// # Standard library loggers
//
// NewLogLogger bridges APIs that still take a *log.Logger, such as
// http.Server.ErrorLog, onto the slog default handler.
package logging
