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

package selectnav

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
)

const (
	// Name is the component name the navigator registers under.
	Name = "select-navigator"

	// HrefAttribute holds an option's destination.
	HrefAttribute = "data-href"

	// SortAttribute enables collated option ordering when "true".
	SortAttribute = "data-sort"
)

var isOption = dom.Tag("option")

func init() {
	component.MustRegister(Name, component.Deferred{Load: Load})
}

// Load returns the select-navigator module.
func Load(context.Context) (*component.Module, error) {
	return &component.Module{Default: Init}, nil
}

// Init listens for change events on el. The event's Detail selects the
// option by value or label; without one the option marked selected is used.
// The disposer removes the listener.
func Init(_ context.Context, el *dom.Element, _ any) (component.Disposer, error) {
	options := el.QueryAll(isOption)
	if len(options) == 0 {
		slog.Info("no option items found, select navigator inactive", "container", el.String())
		return func() {}, nil
	}

	if v, _ := el.Attr(SortAttribute); v == "true" {
		SortOptions(el, pageLanguage(el.Document()))
	}

	doc := el.Document()
	id := el.On("change", func(ev *dom.Event) {
		opt := selectOption(el, ev.Detail)
		if opt == nil {
			return
		}
		url, _ := opt.Attr(HrefAttribute)
		if url == "" {
			slog.Error("no data-href specified for selected option", "option", opt.String())
			return
		}
		doc.Navigate(url)
	})

	return func() { el.Off("change", id) }, nil
}

// SortOptions reorders the options of every select under el (or el itself)
// by label. Options with an empty value stay first as placeholders.
func SortOptions(el *dom.Element, tag language.Tag) {
	selects := el.QueryAll(dom.Tag("select"))
	if el.Tag() == "select" {
		selects = append([]*dom.Element{el}, selects...)
	}

	c := collate.New(tag, collate.IgnoreCase, collate.Loose)
	for _, sel := range selects {
		type keyed struct {
			el    *dom.Element
			label string
		}
		var placeholders, items []keyed
		for _, child := range sel.Children() {
			if child.Tag() != "option" {
				continue
			}
			k := keyed{el: child, label: strings.TrimSpace(child.Text())}
			if v, ok := child.Attr("value"); ok && v == "" {
				placeholders = append(placeholders, k)
				continue
			}
			items = append(items, k)
		}
		slices.SortStableFunc(items, func(a, b keyed) int {
			return c.CompareString(a.label, b.label)
		})
		for _, k := range append(placeholders, items...) {
			sel.Append(k.el)
		}
	}
}

// selectOption marks the option chosen by detail as selected and returns it.
func selectOption(el *dom.Element, detail any) *dom.Element {
	options := el.QueryAll(isOption)
	var chosen *dom.Element
	if want, ok := detail.(string); ok {
		for _, opt := range options {
			v, hasValue := opt.Attr("value")
			if (hasValue && v == want) || (!hasValue && strings.TrimSpace(opt.Text()) == want) {
				chosen = opt
				break
			}
		}
	} else {
		for _, opt := range options {
			if opt.HasAttr("selected") {
				chosen = opt
				break
			}
		}
	}
	if chosen == nil {
		return nil
	}
	for _, opt := range options {
		if opt.Same(chosen) {
			opt.SetAttr("selected", "")
		} else {
			opt.RemoveAttr("selected")
		}
	}
	return chosen
}

func pageLanguage(doc *dom.Document) language.Tag {
	if root := doc.Root().Query(dom.Tag("html")); root != nil {
		if lang, _ := root.Attr("lang"); lang != "" {
			if tag, err := language.Parse(lang); err == nil {
				return tag
			}
		}
	}
	return language.English
}
