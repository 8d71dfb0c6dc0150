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
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// Element is a handle on one node of a Document. Handles are cheap; two
// handles on the same node are interchangeable (see Same).
type Element struct {
	node *html.Node
	doc  *Document
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Same reports whether both handles refer to the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// Tag returns the lower-case tag name, or "" for non-element nodes.
func (e *Element) Tag() string {
	if e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return attr(e.node, name)
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, name, value)
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	v, _ := e.Attr("class")
	return slices.Contains(strings.Fields(v), class)
}

// AddClass appends class to the class list unless already present.
func (e *Element) AddClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, _ := attr(e.node, "class")
	classes := strings.Fields(v)
	if slices.Contains(classes, class) {
		return
	}
	setAttr(e.node, "class", strings.Join(append(classes, class), " "))
}

// RemoveClass removes every occurrence of class from the class list.
func (e *Element) RemoveClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, ok := attr(e.node, "class")
	if !ok {
		return
	}
	classes := slices.DeleteFunc(strings.Fields(v), func(c string) bool { return c == class })
	setAttr(e.node, "class", strings.Join(classes, " "))
}

// Parent returns the nearest element ancestor, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	if p := e.node.Parent; p != nil && p.Type == html.ElementNode {
		return e.doc.wrap(p)
	}
	return nil
}

// Closest returns the nearest inclusive ancestor matching m, or nil.
func (e *Element) Closest(m Matcher) *Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && m(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Query returns the first descendant matching m, or nil.
func (e *Element) Query(m Matcher) *Element {
	return e.QueryPruned(m, nil)
}

// QueryPruned is Query skipping elements matching prune and their subtrees.
func (e *Element) QueryPruned(m, prune Matcher) *Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.doc.wrap(findFirst(e.node, m, prune))
}

// QueryAll returns every descendant matching m in document order.
// The receiver itself is never included.
func (e *Element) QueryAll(m Matcher) []*Element {
	return e.QueryAllPruned(m, nil)
}

// QueryAllPruned is QueryAll skipping elements matching prune and their
// subtrees.
func (e *Element) QueryAllPruned(m, prune Matcher) []*Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	nodes := findAll(e.node, m, prune, nil)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, e.doc.wrap(n))
	}
	return out
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// RemoveChildren detaches every child node.
func (e *Element) RemoveChildren() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
}

// SetInnerHTML replaces the children with the parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.fragmentContext())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse HTML fragment", err)
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendHTML parses markup and appends the resulting nodes as children.
// It returns handles for the appended element nodes.
func (e *Element) AppendHTML(markup string) ([]*Element, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.fragmentContext())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse HTML fragment", err)
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for _, n := range nodes {
		e.node.AppendChild(n)
		if n.Type == html.ElementNode {
			out = append(out, e.doc.wrap(n))
		}
	}
	return out, nil
}

// Append moves child to the end of e's children, detaching it from its
// current parent first. Appending an ancestor of e is a no-op.
func (e *Element) Append(child *Element) {
	if child == nil || child.doc != e.doc {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.node; n != nil; n = n.Parent {
		if n == child.node {
			return
		}
	}
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *Element) fragmentContext() *html.Node {
	if e.node.Type == html.ElementNode {
		return e.node
	}
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// EnsureID returns the element's id, assigning a unique one first when the
// element has none. Used to wire aria-controls and similar references.
func (e *Element) EnsureID(prefix string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if id, ok := attr(e.node, "id"); ok && id != "" {
		return id
	}
	id := prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	setAttr(e.node, "id", id)
	return id
}

// String describes the element's opening tag for logs and error messages.
func (e *Element) String() string {
	if e == nil || e.node == nil {
		return "<nil>"
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	if e.node.Type != html.ElementNode {
		return fmt.Sprintf("#node(%d)", e.node.Type)
	}
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(e.node.Data)
	for _, a := range e.node.Attr {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
	}
	sb.WriteString(">")
	return sb.String()
}
