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

// Package mainnav renders the site's primary navigation menus.
//
// Navigation data is embedded once per page as JSON in two script
// elements, #navigation-data-primary and #navigation-data-secondary. Two
// eager components share it:
//
//   - main-nav-desktop renders the primary items plus a Search entry whose
//     URL comes from the container's data-search-url attribute (default
//     "/search").
//   - main-nav-mobile renders both the primary and the secondary menus,
//     including at most one call-to-action link.
//
// Markup comes from the embedded templates under templates/. Toggle buttons
// carry data-nav-toggle and aria-controls; clicking one flips its
// aria-expanded state and the hidden attribute of the element it controls.
// Disposing either component removes its listener and rendered markup.
package mainnav
