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

package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
	"github.com/Princeton-CDH/cdhweb-components/pkg/header"
	"github.com/Princeton-CDH/cdhweb-components/pkg/page"
	"github.com/Princeton-CDH/cdhweb-components/pkg/serializer"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

// Response headers describing the mount pass of a served page.
const (
	HeaderComponentsMounted = "X-Components-Mounted"
	HeaderComponentsFailed  = "X-Components-Failed"
)

// handlePage serves GET /{path} with the page's components mounted.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	src, err := s.pages.load(r.URL.Path)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeNotFound {
			WriteError(w, r, http.StatusNotFound, ErrCodeNotFound,
				"Page not found", false, map[string]any{"path": r.URL.Path})
			return
		}
		slog.Error("failed to load page", "path", r.URL.Path, "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to load page", true, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.PageTimeout)
	defer cancel()

	res, err := page.Hydrate(ctx, bytes.NewReader(src), page.Options{
		Registry:      s.registry,
		Storage:       storage.NewCookie(r, w),
		Isolate:       s.config.Isolate,
		Location:      r.URL.Path,
		LoaderTimeout: s.config.LoaderTimeout,
	})
	if err != nil {
		pageHydrations.WithLabelValues("failed").Inc()
		slog.Error("failed to hydrate page",
			"requestID", r.Context().Value(contextKeyRequestID),
			"path", r.URL.Path,
			"error", err,
		)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to mount page components", true, nil)
		return
	}
	// Listeners attached during the mount pass have nothing to react to
	// once the page is rendered.
	defer res.Ledger.DisposeAll()

	result := "ok"
	if len(res.Failures) > 0 {
		result = "degraded"
	}
	pageHydrations.WithLabelValues(result).Inc()
	for _, f := range res.Failures {
		pageComponentFailures.WithLabelValues(f.Component, f.Kind.String()).Inc()
		slog.Warn("component failed to mount",
			"requestID", r.Context().Value(contextKeyRequestID),
			"path", r.URL.Path,
			"component", f.Component,
			"error", f.Error(),
		)
	}

	var buf bytes.Buffer
	if err := res.Render(&buf); err != nil {
		slog.Error("failed to render page", "path", r.URL.Path, "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to render page", true, nil)
		return
	}

	w.Header().Set(HeaderComponentsMounted, strconv.Itoa(res.Mounted))
	w.Header().Set(HeaderComponentsFailed, strconv.Itoa(len(res.Failures)))
	serializer.RespondHTML(w, http.StatusOK, buf.Bytes())
}

// ComponentInfo describes a registered component.
type ComponentInfo struct {
	Name     string `json:"name" yaml:"name"`
	Strategy string `json:"strategy" yaml:"strategy"`
}

// ComponentsResponse is the body of GET /v1/components.
type ComponentsResponse struct {
	header.Header `json:",inline" yaml:",inline"`

	Count      int             `json:"count" yaml:"count"`
	Components []ComponentInfo `json:"components" yaml:"components"`
}

// NewComponentsResponse lists the components in reg in name order.
func NewComponentsResponse(reg *component.Registry, version string) *ComponentsResponse {
	resp := &ComponentsResponse{Components: []ComponentInfo{}}
	resp.Init(header.KindComponentCatalog, header.APIVersion, version)
	for _, name := range reg.Names() {
		strategy, err := reg.Resolve(name)
		if err != nil {
			continue
		}
		resp.Components = append(resp.Components, ComponentInfo{Name: name, Strategy: strategy.Kind()})
	}
	resp.Count = len(resp.Components)
	return resp
}

// TableHeader implements serializer.Tabular.
func (c *ComponentsResponse) TableHeader() []string {
	return []string{"NAME", "STRATEGY"}
}

// TableRows implements serializer.Tabular.
func (c *ComponentsResponse) TableRows() [][]string {
	rows := make([][]string, 0, len(c.Components))
	for _, info := range c.Components {
		rows = append(rows, []string{info.Name, info.Strategy})
	}
	return rows
}

// handleComponents serves GET /v1/components.
func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, NewComponentsResponse(s.registry, s.config.Version))
}

// DismissResponse is the body of POST /v1/alerts/dismiss.
type DismissResponse struct {
	Dismissed string `json:"dismissed" yaml:"dismissed"`
}

// handleDismissAlert serves POST /v1/alerts/dismiss?id=ALERT. It records the
// alert in the visitor's storage cookie so later pages keep the banner hidden.
func (s *Server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest,
			"Missing alert id", false, map[string]any{"param": "id"})
		return
	}

	if err := storage.NewCookie(r, w).Set(id, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to store dismissal", true, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, DismissResponse{Dismissed: id})
}
