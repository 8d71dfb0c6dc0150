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

// Package serializer writes mount reports and other results in the formats
// the CLI and server expose, and reads site configuration files.
//
// Output formats:
//   - JSON: indented, machine-readable
//   - YAML: human-readable
//   - Table: aligned columns; values implementing Tabular render one row
//     per item, anything else is flattened to dotted field names
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// Input formats for Reader are JSON, YAML and TOML, chosen by file
// extension with FormatFromPath:
//
//	cfg, err := serializer.FromFile[config.Site]("site.toml")
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
