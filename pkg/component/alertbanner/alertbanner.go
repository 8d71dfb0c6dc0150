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

package alertbanner

import (
	"context"
	"log/slog"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

const (
	// Name is the component name the banner registers under.
	Name = "alert-banner"

	// IDAttribute holds the alert identifier used as the storage key.
	IDAttribute = "data-alert-id"

	// HiddenClass hides the banner.
	HiddenClass = "u-hidden"
)

func init() {
	component.MustRegister(Name, component.Eager{Init: Init})
}

// Init reveals the banner unless it was dismissed before and wires the
// dismiss button. The returned disposer does nothing; the banner keeps its
// state and listener for the life of the page.
func Init(_ context.Context, el *dom.Element, _ any) (component.Disposer, error) {
	alertID, _ := el.Attr(IDAttribute)
	if alertID == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no banner alert ID supplied")
	}

	store := el.Document().Storage()
	if _, dismissed := store.Get(alertID); dismissed {
		slog.Debug("alert previously dismissed", "alert_id", alertID)
		return func() {}, nil
	}

	el.RemoveClass(HiddenClass)

	if btn := el.Query(dom.Tag("button")); btn != nil {
		btn.On("click", func(*dom.Event) {
			if err := store.Set(alertID, alertID); err != nil {
				slog.Warn("failed to persist alert dismissal", "alert_id", alertID, "error", err)
			}
			el.AddClass(HiddenClass)
		})
	}

	return func() {}, nil
}
