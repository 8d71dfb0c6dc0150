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

package page

import (
	"strconv"
	"time"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/header"
)

// Report summarises a hydration for CLI and API output.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Source     string            `json:"source,omitempty" yaml:"source,omitempty"`
	Location   string            `json:"location" yaml:"location"`
	Mounted    int               `json:"mounted" yaml:"mounted"`
	Failed     int               `json:"failed" yaml:"failed"`
	Duration   string            `json:"duration" yaml:"duration"`
	Components []ComponentReport `json:"components" yaml:"components"`
	Failures   []FailureReport   `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// ComponentReport describes one mounted container.
type ComponentReport struct {
	Name  string `json:"name" yaml:"name"`
	Tag   string `json:"tag" yaml:"tag"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	State string `json:"state" yaml:"state"`
}

// FailureReport describes one container that failed to mount.
type FailureReport struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Kind      string `json:"kind" yaml:"kind"`
	Container string `json:"container,omitempty" yaml:"container,omitempty"`
	Error     string `json:"error" yaml:"error"`
}

// Report builds the summary of r. source names the input, e.g. a path, and
// version the build producing the report.
func (r *Result) Report(source, version string) *Report {
	rep := &Report{
		Source:     source,
		Location:   r.Document.Location(),
		Duration:   r.Duration.Round(time.Microsecond).String(),
		Components: make([]ComponentReport, 0, r.Ledger.Len()),
	}
	rep.Init(header.KindMountReport, header.APIVersion, version)

	for _, rec := range r.Ledger.Records() {
		id, _ := rec.Container.Attr("id")
		rep.Components = append(rep.Components, ComponentReport{
			Name:  rec.Component,
			Tag:   rec.Container.Tag(),
			ID:    id,
			State: rec.State().String(),
		})
	}
	for _, f := range r.Failures {
		rep.Failures = append(rep.Failures, FailureFromError(f))
	}
	rep.Mounted = len(rep.Components)
	rep.Failed = len(rep.Failures)
	return rep
}

// FailureFromError converts a mount error for reporting.
func FailureFromError(err *component.Error) FailureReport {
	fr := FailureReport{Name: err.Component, Kind: err.Kind.String(), Error: err.Error()}
	if err.Container != nil {
		fr.Container = err.Container.String()
	}
	return fr
}

// TableHeader implements serializer.Tabular.
func (r *Report) TableHeader() []string {
	return []string{"COMPONENT", "ELEMENT", "ID", "STATE"}
}

// TableRows implements serializer.Tabular. Failed containers are listed
// with their error kind as the state.
func (r *Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Components)+len(r.Failures))
	for _, c := range r.Components {
		rows = append(rows, []string{c.Name, c.Tag, c.ID, c.State})
	}
	for _, f := range r.Failures {
		rows = append(rows, []string{f.Name, f.Container, "", "failed (" + f.Kind + ")"})
	}
	return rows
}

// Summary returns a one-line description for logs.
func (r *Report) Summary() string {
	return strconv.Itoa(r.Mounted) + " mounted, " + strconv.Itoa(r.Failed) + " failed in " + r.Duration
}
