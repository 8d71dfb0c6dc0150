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

package component

import (
	"encoding/json"
	"strings"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
)

var (
	isContainer    = dom.HasAttr(NameAttribute)
	isConfigScript = dom.And(dom.Tag("script"), dom.HasAttr(ConfigAttribute))
)

// ExtractConfig returns the decoded JSON payload of the container's config
// script. Only the first config script that does not belong to a nested
// container is considered. A container without one yields nil.
func ExtractConfig(el *dom.Element) (any, error) {
	script := el.QueryPruned(isConfigScript, isContainer)
	if script == nil {
		return nil, nil
	}

	raw := strings.TrimSpace(script.Text())
	if raw == "" {
		return nil, nil
	}

	var config any
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		name, _ := el.Attr(NameAttribute)
		return nil, newError(KindPayload, name, el, "malformed component configuration", err)
	}
	return config, nil
}
