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
	"strings"

	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
)

// Kind classifies a per-container mount failure.
type Kind int

const (
	// KindConfiguration: the container has no component name.
	KindConfiguration Kind = iota + 1
	// KindResolution: the name is not registered.
	KindResolution
	// KindPayload: the embedded configuration is not valid JSON.
	KindPayload
	// KindImplementation: loading or invoking the implementation failed.
	KindImplementation
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindResolution:
		return "resolution"
	case KindPayload:
		return "payload"
	case KindImplementation:
		return "implementation"
	default:
		return "unknown"
	}
}

// Code maps the kind onto the structured error codes.
func (k Kind) Code() errors.ErrorCode {
	switch k {
	case KindConfiguration:
		return errors.ErrCodeConfiguration
	case KindResolution:
		return errors.ErrCodeUnrecognized
	case KindPayload:
		return errors.ErrCodePayload
	case KindImplementation:
		return errors.ErrCodeImplementation
	default:
		return errors.ErrCodeInternal
	}
}

// Error is a failure to mount one container.
type Error struct {
	Kind      Kind
	Component string
	Container *dom.Element
	Message   string
	Cause     error
}

func newError(kind Kind, name string, el *dom.Element, message string, cause error) *Error {
	return &Error{
		Kind:      kind,
		Component: name,
		Container: el,
		Message:   message,
		Cause:     cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Kind.Code(), e.Message)
	if e.Container != nil {
		fmt.Fprintf(&sb, " (container %s)", e.Container)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

// Unwrap exposes the failure as a StructuredError whose cause is the
// original error, so errors.Is and errors.As reach both.
func (e *Error) Unwrap() error {
	return e.Structured()
}

// Structured converts the error for logging and API responses.
func (e *Error) Structured() *errors.StructuredError {
	ctx := map[string]any{"kind": e.Kind.String()}
	if e.Component != "" {
		ctx["component"] = e.Component
	}
	if e.Container != nil {
		ctx["container"] = e.Container.String()
	}
	return errors.WrapWithContext(e.Kind.Code(), e.Message, e.Cause, ctx)
}

// BatchError collects every failure of an isolated mount pass.
type BatchError struct {
	Failures []*Error
}

// Error implements the error interface.
func (b *BatchError) Error() string {
	if len(b.Failures) == 1 {
		return b.Failures[0].Error()
	}
	msgs := make([]string, 0, len(b.Failures))
	for _, f := range b.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%d components failed to mount: %s", len(b.Failures), strings.Join(msgs, "; "))
}

// Unwrap returns the individual failures.
func (b *BatchError) Unwrap() []error {
	out := make([]error, 0, len(b.Failures))
	for _, f := range b.Failures {
		out = append(out, f)
	}
	return out
}
