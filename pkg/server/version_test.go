package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no accept header", "", "v1"},
		{"plain json", "application/json", "v1"},
		{"vendor v1", "application/vnd.cdhweb.v1+json", "v1"},
		{"vendor with params", "text/html, application/vnd.cdhweb.v1+json; q=0.9", "v1"},
		{"unknown version", "application/vnd.cdhweb.v9+json", "v1"},
		{"other vendor", "application/vnd.other.v2+json", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := negotiateAPIVersion(req); got != tt.want {
				t.Errorf("negotiateAPIVersion() = %s, want %s", got, tt.want)
			}
		})
	}
}
