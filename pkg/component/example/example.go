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

// Package example provides two reference components showing both
// registration strategies. example-sync is eager and accepts an optional
// string config; example-async is deferred and requires one. Both render
// the value into their container and clear it when disposed.
package example

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

const (
	SyncName  = "example-sync"
	AsyncName = "example-async"
)

//go:embed templates/example.html.tmpl
var exampleTemplate string

var tmpl = template.Must(template.New("example").Parse(exampleTemplate))

func init() {
	component.MustRegister(SyncName, component.Eager{Init: InitSync})
	component.MustRegister(AsyncName, component.Deferred{Load: LoadAsync})
}

// InitSync renders the optional string config.
func InitSync(_ context.Context, el *dom.Element, config any) (component.Disposer, error) {
	title, ok := config.(string)
	if !ok && config != nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("expected component data of string or none but received %T", config))
	}
	return mount(el, "example-sync-component", title)
}

// LoadAsync returns the example-async module.
func LoadAsync(context.Context) (*component.Module, error) {
	return &component.Module{Default: initAsync}, nil
}

func initAsync(_ context.Context, el *dom.Element, config any) (component.Disposer, error) {
	title, ok := config.(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "expected data of type string")
	}
	return mount(el, "example-async-component", title)
}

func mount(el *dom.Element, class, title string) (component.Disposer, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, struct{ Class, Title string }{class, title}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to render example component", err)
	}
	// The config script is part of the children and goes with them.
	if err := el.SetInnerHTML(sb.String()); err != nil {
		return nil, err
	}
	return el.RemoveChildren, nil
}
