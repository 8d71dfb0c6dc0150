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
	"strings"

	"golang.org/x/net/html"
)

// Matcher reports whether an element node satisfies a selector.
// Matchers run while the document lock is held and must not call
// Element methods.
type Matcher func(n *html.Node) bool

// Tag matches elements by tag name, case-insensitively.
func Tag(name string) Matcher {
	name = strings.ToLower(name)
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

// HasAttr matches elements carrying the attribute, whatever its value.
func HasAttr(name string) Matcher {
	return func(n *html.Node) bool {
		_, ok := attr(n, name)
		return n.Type == html.ElementNode && ok
	}
}

// AttrEquals matches elements whose attribute equals value.
func AttrEquals(name, value string) Matcher {
	return func(n *html.Node) bool {
		v, ok := attr(n, name)
		return n.Type == html.ElementNode && ok && v == value
	}
}

// And matches when every matcher does.
func And(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Not inverts a matcher.
func Not(m Matcher) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && !m(n)
	}
}

func attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// findFirst returns the first descendant of root (root excluded) matching m
// in document order. Elements matching prune are skipped along with their
// subtrees.
func findFirst(root *html.Node, m, prune Matcher) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if prune != nil && prune(c) {
			continue
		}
		if m(c) {
			return c
		}
		if found := findFirst(c, m, prune); found != nil {
			return found
		}
	}
	return nil
}

// findAll appends every descendant of root matching m in document order.
func findAll(root *html.Node, m, prune Matcher, out []*html.Node) []*html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if prune != nil && prune(c) {
			continue
		}
		if m(c) {
			out = append(out, c)
		}
		out = findAll(c, m, prune, out)
	}
	return out
}
