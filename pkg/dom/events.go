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
	"golang.org/x/net/html"
)

// ListenerID identifies a registered listener. Go function values cannot be
// compared, so removal goes through the ID returned by On.
type ListenerID uint64

// Listener receives dispatched events.
type Listener func(ev *Event)

type listenerEntry struct {
	id       ListenerID
	listener Listener
}

type eventTarget struct {
	listeners map[string][]listenerEntry
}

// Event is a DOM-style event. An Event must only be used from the goroutine
// that dispatches it.
type Event struct {
	// Type is the event name, e.g. "click" or "change".
	Type string

	// Target is the element the event was dispatched on.
	Target *Element

	// CurrentTarget is the element whose listeners are running.
	CurrentTarget *Element

	// Detail carries event-specific data, e.g. the selected value for "change".
	Detail any

	// Bubbles makes the event propagate to ancestors after the target.
	Bubbles bool

	// Cancelable allows PreventDefault to take effect.
	Cancelable bool

	// DefaultPrevented is true once PreventDefault was called on a cancelable event.
	DefaultPrevented bool

	propagationStopped bool
}

// NewEvent returns a bubbling, cancelable event of the given type.
func NewEvent(eventType string, detail any) *Event {
	return &Event{
		Type:       eventType,
		Detail:     detail,
		Bubbles:    true,
		Cancelable: true,
	}
}

// PreventDefault marks a cancelable event as handled.
func (ev *Event) PreventDefault() {
	if ev.Cancelable {
		ev.DefaultPrevented = true
	}
}

// StopPropagation keeps the event from reaching further ancestors.
func (ev *Event) StopPropagation() {
	ev.propagationStopped = true
}

// On registers a listener for eventType on the element.
func (e *Element) On(eventType string, fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	d := e.doc
	d.evMu.Lock()
	defer d.evMu.Unlock()

	t, ok := d.targets[e.node]
	if !ok {
		t = &eventTarget{listeners: make(map[string][]listenerEntry)}
		d.targets[e.node] = t
	}
	id := d.nextID
	d.nextID++
	t.listeners[eventType] = append(t.listeners[eventType], listenerEntry{id: id, listener: fn})
	return id
}

// Off removes a listener by ID. It reports whether one was removed.
func (e *Element) Off(eventType string, id ListenerID) bool {
	d := e.doc
	d.evMu.Lock()
	defer d.evMu.Unlock()

	t, ok := d.targets[e.node]
	if !ok {
		return false
	}
	entries := t.listeners[eventType]
	for i, entry := range entries {
		if entry.id == id {
			t.listeners[eventType] = append(entries[:i:i], entries[i+1:]...)
			if len(t.listeners[eventType]) == 0 {
				delete(t.listeners, eventType)
			}
			if len(t.listeners) == 0 {
				delete(d.targets, e.node)
			}
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners for eventType on the element.
func (e *Element) ListenerCount(eventType string) int {
	d := e.doc
	d.evMu.Lock()
	defer d.evMu.Unlock()
	if t, ok := d.targets[e.node]; ok {
		return len(t.listeners[eventType])
	}
	return 0
}

// Dispatch delivers ev to the element's listeners, then to each ancestor's
// when the event bubbles. Listeners run in registration order without any
// document lock held. It returns false if a listener prevented the default.
func (e *Element) Dispatch(ev *Event) bool {
	if ev == nil {
		return true
	}
	ev.Target = e

	for n := e.node; n != nil; n = e.parentNode(n) {
		ev.CurrentTarget = e.doc.wrap(n)
		for _, entry := range e.doc.snapshot(n, ev.Type) {
			entry.listener(ev)
		}
		if !ev.Bubbles || ev.propagationStopped {
			break
		}
	}
	return !ev.DefaultPrevented
}

// Click dispatches a bubbling "click" event on the element.
func (e *Element) Click() bool {
	return e.Dispatch(NewEvent("click", nil))
}

func (e *Element) parentNode(n *html.Node) *html.Node {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return n.Parent
}

func (d *Document) snapshot(n *html.Node, eventType string) []listenerEntry {
	d.evMu.Lock()
	defer d.evMu.Unlock()
	t, ok := d.targets[n]
	if !ok {
		return nil
	}
	entries := make([]listenerEntry, len(t.listeners[eventType]))
	copy(entries, t.listeners[eventType])
	return entries
}
