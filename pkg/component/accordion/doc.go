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

// Package accordion progressively enhances native disclosure widgets
// (details/summary) inside an accordion container.
//
// Each summary is given role="button", an aria-expanded state mirroring its
// details element, and aria-controls pointing at the details element. A
// click listener keeps aria-expanded and the open attribute in step.
//
// The accordion owns its subtree: once enhanced, it runs a mount pass over
// its own container so nested components start after it.
//
// The package is registered as a deferred component; its loader runs only
// when a page actually contains an accordion.
package accordion
