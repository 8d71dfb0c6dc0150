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

// Package selectnav implements a select menu that navigates on change.
//
// Each option carries its destination in data-href. When the container has
// data-sort="true" the options are first reordered by their label using the
// collation rules of the page language (the lang attribute of the html
// element, English when absent). Registered as a deferred component.
package selectnav
