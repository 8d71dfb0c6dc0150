package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/dom"
	"github.com/Princeton-CDH/cdhweb-components/pkg/header"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

const testPage = `<!DOCTYPE html>
<html><body>
<div data-component="greeting"></div>
<div data-component="dismissable" data-alert-id="maintenance" hidden></div>
</body></html>`

func testRegistry(t *testing.T) *component.Registry {
	t.Helper()
	reg := component.NewRegistry()
	reg.MustRegister("greeting", component.Eager{Init: func(_ context.Context, el *dom.Element, _ any) (component.Disposer, error) {
		return nil, el.SetInnerHTML("<p>hello</p>")
	}})
	reg.MustRegister("dismissable", component.Eager{Init: func(_ context.Context, el *dom.Element, _ any) (component.Disposer, error) {
		id, _ := el.Attr("data-alert-id")
		if _, ok := el.Document().Storage().Get(id); !ok {
			el.RemoveAttr("hidden")
		}
		return nil, nil
	}})
	reg.MustRegister("broken", component.Eager{Init: func(context.Context, *dom.Element, any) (component.Disposer, error) {
		return nil, errors.New("boom")
	}})
	return reg
}

func newTestServer(t *testing.T, pages map[string]string) *Server {
	t.Helper()
	root := t.TempDir()
	for name, body := range pages {
		file := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := NewConfig()
	cfg.DocRoot = root
	cfg.Registry = testRegistry(t)
	return NewServer(cfg)
}

func TestNewServer(t *testing.T) {
	s := NewServer(nil)
	if s == nil {
		t.Fatal("expected server instance, got nil")
	}
	if s.config == nil {
		t.Error("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.registry == nil {
		t.Error("expected registry to be initialized")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := NewServer(nil)

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
	}{
		{name: "ready state", ready: true, expectedStatus: http.StatusOK},
		{name: "not ready state", ready: false, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetReady(tt.ready)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()
			s.handleReady(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestPageIsHydrated(t *testing.T) {
	s := newTestServer(t, map[string]string{"index.html": testPage})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %s", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<p>hello</p>") {
		t.Errorf("expected greeting to be mounted, got %s", body)
	}
	if strings.Contains(body, "hidden") {
		t.Errorf("expected alert to be revealed, got %s", body)
	}
	if got := w.Header().Get(HeaderComponentsMounted); got != "2" {
		t.Errorf("expected 2 mounted components, got %q", got)
	}
	if got := w.Header().Get(HeaderComponentsFailed); got != "0" {
		t.Errorf("expected 0 failed components, got %q", got)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestPageHonorsDismissedAlert(t *testing.T) {
	s := newTestServer(t, map[string]string{"index.html": testPage})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: storage.CookieName, Value: "maintenance=maintenance"})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "hidden") {
		t.Errorf("expected dismissed alert to stay hidden, got %s", w.Body.String())
	}
}

func TestPageWithFailingComponentIsServed(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"about.html": `<div data-component="broken"></div><div data-component="greeting"></div><div data-component="missing"></div>`,
	})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "<p>hello</p>") {
		t.Error("expected healthy component to mount next to failing ones")
	}
	if got := w.Header().Get(HeaderComponentsFailed); got != "2" {
		t.Errorf("expected 2 failed components, got %q", got)
	}
}

func TestPageResolution(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"index.html":          "<p>home</p>",
		"about.html":          "<p>about</p>",
		"people/index.html":   "<p>people</p>",
		"events/2024.html":    "<p>events</p>",
		"../outside.html":     "<p>outside</p>",
		"people/staff.txt":    "not a page",
		"projects/index.html": "<p>projects</p>",
	})

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "home"},
		{"/about", http.StatusOK, "about"},
		{"/about.html", http.StatusOK, "about"},
		{"/people", http.StatusOK, "people"},
		{"/people/", http.StatusOK, "people"},
		{"/events/2024", http.StatusOK, "events"},
		{"/../outside", http.StatusNotFound, ""},
		{"/people/staff.txt", http.StatusNotFound, ""},
		{"/nowhere", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path = tt.path
			w := httptest.NewRecorder()
			s.handlePage(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			if tt.want != "" && !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("expected body to contain %q, got %s", tt.want, w.Body.String())
			}
		})
	}
}

func TestPageMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, map[string]string{"index.html": testPage})

	w := httptest.NewRecorder()
	s.handlePage(w, httptest.NewRequest(http.MethodPost, "/", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestComponentsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/components", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp ComponentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Kind != header.KindComponentCatalog {
		t.Errorf("expected kind %s, got %s", header.KindComponentCatalog, resp.Kind)
	}
	if resp.Count != 3 {
		t.Errorf("expected 3 components, got %d", resp.Count)
	}
	if resp.Components[0].Name != "broken" || resp.Components[0].Strategy != "eager" {
		t.Errorf("unexpected first component: %+v", resp.Components[0])
	}
	if w.Header().Get("X-API-Version") != DefaultAPIVersion {
		t.Errorf("expected X-API-Version %s, got %s", DefaultAPIVersion, w.Header().Get("X-API-Version"))
	}
}

func TestDismissAlertEndpoint(t *testing.T) {
	s := newTestServer(t, map[string]string{"index.html": testPage})

	t.Run("sets storage cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/alerts/dismiss?id=maintenance", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != storage.CookieName {
			t.Fatalf("expected storage cookie, got %v", cookies)
		}

		// The cookie keeps the banner hidden on the next page view.
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		pw := httptest.NewRecorder()
		s.Handler().ServeHTTP(pw, req)
		if !strings.Contains(pw.Body.String(), "hidden") {
			t.Errorf("expected dismissed alert to stay hidden, got %s", pw.Body.String())
		}
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/alerts/dismiss", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/alerts/dismiss?id=x", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, map[string]string{"index.html": testPage})

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	for _, name := range []string{"cdh_http_requests_total", "cdh_page_hydrations_total"} {
		if !strings.Contains(w.Body.String(), name) {
			t.Errorf("expected metrics to include %s", name)
		}
	}
}

func TestStartAndShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 0
	cfg.DocRoot = t.TempDir()
	cfg.Registry = component.NewRegistry()
	s := NewServer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ready {
		t.Error("expected server to be not ready after shutdown")
	}
}
