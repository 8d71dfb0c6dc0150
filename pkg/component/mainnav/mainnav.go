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

package mainnav

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"strconv"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

const (
	// DesktopName is the component name of the desktop menu.
	DesktopName = "main-nav-desktop"

	// MobileName is the component name of the mobile menu.
	MobileName = "main-nav-mobile"

	// SearchURLAttribute overrides the desktop Search entry's URL.
	SearchURLAttribute = "data-search-url"

	// DefaultSearchURL is used when the container has no search URL.
	DefaultSearchURL = "/search"

	// columnThreshold is the link count above which a submenu is split in two.
	columnThreshold = 4
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

var isToggle = dom.HasAttr("data-nav-toggle")

func init() {
	component.MustRegister(DesktopName, component.Eager{Init: InitDesktop})
	component.MustRegister(MobileName, component.Eager{Init: InitMobile})
}

type link struct {
	NavItem
	IsLast bool
}

type desktopItem struct {
	PrimaryItem
	Columns [][]link
}

type desktopView struct {
	ID    string
	Items []desktopItem
}

type mobileView struct {
	ID        string
	Primary   []PrimaryItem
	Secondary Secondary
	CTA       *NavItem
}

// SearchItem returns the menu entry appended to the desktop menu.
func SearchItem(searchURL string) PrimaryItem {
	return PrimaryItem{
		Title:    "Search",
		Overview: "Search our website for people, projects, events or blogs.",
		LinkURL:  searchURL,
		IsSearch: true,
	}
}

// columns splits links into two columns once there are more than the
// threshold, keeping top-to-bottom reading order.
func columns(items []NavItem) [][]link {
	if len(items) == 0 {
		return nil
	}
	toLinks := func(items []NavItem) []link {
		out := make([]link, len(items))
		for i, it := range items {
			out[i] = link{NavItem: it}
		}
		return out
	}
	if len(items) <= columnThreshold {
		col := toLinks(items)
		col[len(col)-1].IsLast = true
		return [][]link{col}
	}
	half := (len(items) + 1) / 2
	col1, col2 := toLinks(items[:half]), toLinks(items[half:])
	col2[len(col2)-1].IsLast = true
	return [][]link{col1, col2}
}

// InitDesktop renders the desktop menu into el.
func InitDesktop(_ context.Context, el *dom.Element, _ any) (component.Disposer, error) {
	doc := el.Document()
	primary, err := ReadPrimary(doc)
	if err != nil {
		return nil, err
	}

	searchURL, _ := el.Attr(SearchURLAttribute)
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	search := SearchItem(searchURL)
	search.IsCurrent = doc.Location() == searchURL

	view := desktopView{ID: el.EnsureID("main-nav-desktop")}
	for _, item := range append(primary, search) {
		view.Items = append(view.Items, desktopItem{PrimaryItem: item, Columns: columns(item.L2Items)})
	}

	if err := render(el, "desktop.html.tmpl", view); err != nil {
		return nil, err
	}

	id := el.On("click", func(ev *dom.Event) {
		btn := ev.Target.Closest(isToggle)
		if btn == nil || !el.Contains(btn) {
			return
		}
		ev.StopPropagation()
		// One dropdown open at a time.
		for _, other := range el.QueryAll(isToggle) {
			if !other.Same(btn) {
				setExpanded(doc, other, false)
			}
		}
		toggleControlled(doc, btn)
	})
	escID := el.On("keydown", func(ev *dom.Event) {
		if key, _ := ev.Detail.(string); key == "Escape" {
			for _, btn := range el.QueryAll(isToggle) {
				setExpanded(doc, btn, false)
			}
		}
	})

	return func() {
		el.Off("click", id)
		el.Off("keydown", escID)
		el.RemoveChildren()
	}, nil
}

// InitMobile renders the mobile menu into el.
func InitMobile(_ context.Context, el *dom.Element, _ any) (component.Disposer, error) {
	doc := el.Document()
	primary, err := ReadPrimary(doc)
	if err != nil {
		return nil, err
	}
	secondary, err := ReadSecondary(doc)
	if err != nil {
		return nil, err
	}

	view := mobileView{
		ID:        el.EnsureID("main-nav-mobile"),
		Primary:   primary,
		Secondary: secondary,
	}
	if len(secondary.CTA) > 0 {
		view.CTA = &secondary.CTA[0]
	}

	if err := render(el, "mobile.html.tmpl", view); err != nil {
		return nil, err
	}

	id := el.On("click", func(ev *dom.Event) {
		btn := ev.Target.Closest(isToggle)
		if btn == nil || !el.Contains(btn) {
			return
		}
		open := toggleControlled(doc, btn)
		if btn.HasClass("mobile-menu__header-btn") {
			label := "Menu"
			if open {
				label = "Close"
			}
			if span := btn.Query(dom.Tag("span")); span != nil {
				_ = span.SetInnerHTML(label)
			}
		}
	})

	return func() {
		el.Off("click", id)
		el.RemoveChildren()
	}, nil
}

func render(el *dom.Element, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to render navigation", err)
	}
	return el.SetInnerHTML(buf.String())
}

// toggleControlled flips btn's expanded state and returns the new state.
func toggleControlled(doc *dom.Document, btn *dom.Element) bool {
	v, _ := btn.Attr("aria-expanded")
	open := v != "true"
	setExpanded(doc, btn, open)
	return open
}

func setExpanded(doc *dom.Document, btn *dom.Element, open bool) {
	btn.SetAttr("aria-expanded", strconv.FormatBool(open))
	controls, _ := btn.Attr("aria-controls")
	target := doc.GetElementByID(controls)
	if target == nil {
		return
	}
	if open {
		target.RemoveAttr("hidden")
		btn.AddClass("is-open")
	} else {
		target.SetAttr("hidden", "")
		btn.RemoveClass("is-open")
	}
}
