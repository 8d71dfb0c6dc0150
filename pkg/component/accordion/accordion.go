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

package accordion

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// Name is the component name the accordion registers under.
const Name = "accordion"

var (
	isContainer = dom.HasAttr(component.NameAttribute)
	isDetails   = dom.Tag("details")
	isSummary   = dom.Tag("summary")
)

func init() {
	component.MustRegister(Name, component.Deferred{Load: Load})
}

// Load returns the accordion module.
func Load(context.Context) (*component.Module, error) {
	return &component.Module{Default: Init}, nil
}

type binding struct {
	summary *dom.Element
	id      dom.ListenerID
}

// Init enhances every disclosure widget that belongs to this accordion and
// then mounts any components nested inside it. The disposer removes the
// click listeners; the a11y attributes stay.
func Init(ctx context.Context, el *dom.Element, _ any) (component.Disposer, error) {
	items := el.QueryAllPruned(isDetails, isContainer)
	if len(items) == 0 {
		slog.Warn("accordion has no disclosure widgets", "container", el.String())
	}

	bindings := make([]binding, 0, len(items))
	for _, details := range items {
		summary := details.QueryPruned(isSummary, isContainer)
		if summary == nil {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"summary not found for accordion item",
				map[string]any{"details": details.String()})
		}

		enhance(details, summary)
		id := summary.On("click", func(*dom.Event) {
			toggle(details, summary)
		})
		bindings = append(bindings, binding{summary: summary, id: id})
	}

	if m, ok := component.MounterFromContext(ctx); ok {
		if _, err := m.MountAll(ctx, el); err != nil && !m.Isolated() {
			unbind(bindings)
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to mount nested components", err)
		}
	}

	return func() { unbind(bindings) }, nil
}

func enhance(details, summary *dom.Element) {
	summary.SetAttr("role", "button")
	summary.SetAttr("aria-expanded", strconv.FormatBool(details.HasAttr("open")))
	summary.SetAttr("aria-controls", details.EnsureID("accordion"))
}

// toggle flips the details element and reports the new state on its summary.
func toggle(details, summary *dom.Element) {
	wasOpen := details.HasAttr("open")
	summary.SetAttr("aria-expanded", strconv.FormatBool(!wasOpen))
	if wasOpen {
		details.RemoveAttr("open")
	} else {
		details.SetAttr("open", "")
	}
}

func unbind(bindings []binding) {
	for _, b := range bindings {
		b.summary.Off("click", b.id)
	}
}
