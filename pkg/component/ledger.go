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
	"fmt"
	"log/slog"
	"sync"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
)

// State is the lifecycle position of a mount record.
type State int

const (
	StateUnmounted State = iota
	StateMounting
	StateMounted
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateMounting:
		return "mounting"
	case StateMounted:
		return "mounted"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MountRecord pairs a mounted container with its disposer.
type MountRecord struct {
	Component string
	Container *dom.Element

	mu       sync.Mutex
	state    State
	disposer Disposer
}

func newRecord(name string, el *dom.Element) *MountRecord {
	return &MountRecord{Component: name, Container: el, state: StateMounting}
}

// State returns the current lifecycle state.
func (r *MountRecord) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Disposer returns the function the implementation handed back.
func (r *MountRecord) Disposer() Disposer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposer
}

func (r *MountRecord) mounted(d Disposer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d == nil {
		d = noop
	}
	r.disposer = d
	r.state = StateMounted
}

// dispose runs the disposer once. It reports false if the record was
// already disposed or never mounted.
func (r *MountRecord) dispose() (ran bool) {
	r.mu.Lock()
	if r.state != StateMounted {
		r.mu.Unlock()
		return false
	}
	d := r.disposer
	r.state = StateDisposed
	r.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("component disposer panicked",
				"component", r.Component,
				"container", r.Container.String(),
				"panic", rec)
		}
	}()
	d()
	return true
}

// Ledger holds the records of every mounted container so they can be
// released in one pass. It is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	records []*MountRecord
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record adds a mounted container. A nil disposer is stored as a no-op.
func (l *Ledger) Record(name string, el *dom.Element, d Disposer) *MountRecord {
	rec := newRecord(name, el)
	rec.mounted(d)
	l.add(rec)
	return rec
}

func (l *Ledger) add(rec *MountRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
}

// DisposeAll invokes every recorded disposer exactly once, in recording
// order, and empties the ledger. It returns the number of disposers run.
// A panicking disposer is logged and does not stop the rest.
func (l *Ledger) DisposeAll() int {
	l.mu.Lock()
	records := l.records
	l.records = nil
	l.mu.Unlock()

	n := 0
	for _, rec := range records {
		if rec.dispose() {
			n++
			disposalsTotal.Inc()
		}
	}
	return n
}

// Len returns the number of records awaiting disposal.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Records returns a copy of the current records in recording order.
func (l *Ledger) Records() []*MountRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*MountRecord, len(l.records))
	copy(out, l.records)
	return out
}
