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

// Package widgets registers every site component with the global registry.
// Import it for side effects wherever a page is mounted:
//
//	import _ "github.com/Princeton-CDH/cdhweb-components/pkg/component/widgets"
package widgets

import (
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/accordion"
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/alertbanner"
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/example"
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/mainnav"
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/selectnav"
)
