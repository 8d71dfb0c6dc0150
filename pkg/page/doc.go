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

// Package page runs the mount pipeline over a whole HTML document.
//
// Hydrate parses a document, mounts every top-level component under its
// body with a fresh ledger, and returns the mutated document together with
// the ledger so callers can render the result and later dispose of it:
//
//	res, err := page.Hydrate(ctx, r, page.Options{Isolate: true})
//	if err != nil {
//		return err
//	}
//	defer res.Ledger.DisposeAll()
//	return res.Document.Render(w)
//
// In isolated mode failing components are reported in Result.Failures and
// the rest of the page still mounts. Otherwise the first failure is
// returned as the error.
package page
