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

package dom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

// Document is a parsed HTML page together with the capabilities components
// may use while mounted.
type Document struct {
	mu       sync.RWMutex
	root     *html.Node
	store    storage.Store
	location string

	evMu    sync.Mutex
	nextID  ListenerID
	targets map[*html.Node]*eventTarget
}

// Option configures a Document.
type Option func(*Document)

// WithStorage sets the key-value storage exposed to components.
func WithStorage(s storage.Store) Option {
	return func(d *Document) {
		if s != nil {
			d.store = s
		}
	}
}

// WithLocation sets the document's current URL path.
func WithLocation(location string) Option {
	return func(d *Document) {
		d.location = location
	}
}

// Parse reads an HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse HTML document", err)
	}
	return newDocument(root, opts...), nil
}

// ParseString reads an HTML document from a string.
func ParseString(markup string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(markup), opts...)
}

func newDocument(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root:     root,
		store:    storage.NewMemory(),
		location: "/",
		nextID:   1,
		targets:  make(map[*html.Node]*eventTarget),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the document node itself. Queries from it cover the whole page.
func (d *Document) Root() *Element {
	return d.wrap(d.root)
}

// Body returns the <body> element. The HTML parser always synthesizes one.
func (d *Document) Body() *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if n := findFirst(d.root, Tag("body"), nil); n != nil {
		return d.wrap(n)
	}
	return d.wrap(d.root)
}

// GetElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if n := findFirst(d.root, AttrEquals("id", id), nil); n != nil {
		return d.wrap(n)
	}
	return nil
}

// Storage returns the document's key-value storage.
func (d *Document) Storage() storage.Store {
	return d.store
}

// Location returns the current URL path.
func (d *Document) Location() string {
	d.evMu.Lock()
	defer d.evMu.Unlock()
	return d.location
}

// Navigate records a navigation to url, replacing the current location.
func (d *Document) Navigate(url string) {
	d.evMu.Lock()
	defer d.evMu.Unlock()
	d.location = url
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := html.Render(w, d.root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to render HTML document", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: d}
}
