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

// Package header provides the envelope stamped on documents the tools emit.
//
// Mount reports written by the CLI and the component catalog served by the
// API carry a Header so consumers can tell them apart and know which build
// produced them:
//
//	kind: MountReport
//	apiVersion: cdhweb.princeton.edu/v1
//	metadata:
//	  timestamp: "2026-10-17T12:00:00Z"
//	  version: v1.4.0
//
// # Usage
//
//	var h header.Header
//	h.Init(header.KindMountReport, header.APIVersion, version)
//
// or with options:
//
//	h := header.New(
//	    header.WithKind(header.KindComponentCatalog),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("source", "page.html"),
//	)
package header
