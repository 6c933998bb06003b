// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testCSRFKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	tests := []struct {
		name  string
		isDev bool
		addr  string
		want  []string
	}{
		{"production", false, "0.0.0.0:8080", nil},
		{"development default port", true, "localhost:8080", []string{"localhost:8080", "127.0.0.1:8080"}},
		{"development custom addr", true, "localhost:3000", []string{"localhost:8080", "127.0.0.1:8080", "localhost:3000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCSRFConfig(testCSRFKey, tt.isDev, tt.addr)
			if len(cfg.AuthKey) != 32 {
				t.Errorf("AuthKey length = %d, want 32", len(cfg.AuthKey))
			}
			if len(cfg.TrustedOrigins) != len(tt.want) {
				t.Fatalf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, tt.want)
			}
			for i, origin := range cfg.TrustedOrigins {
				if origin != tt.want[i] {
					t.Errorf("TrustedOrigins[%d] = %q, want %q", i, origin, tt.want[i])
				}
				if strings.HasPrefix(origin, "http") {
					t.Errorf("TrustedOrigin %q should be host:port, not a URL", origin)
				}
			}
		})
	}
}

func TestCSRF_FetchMetadata(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := CSRF(DefaultCSRFConfig(testCSRFKey, false, ""))(ok)

	tests := []struct {
		name      string
		method    string
		fetchSite string
		want      int
	}{
		{"same-origin post", http.MethodPost, "same-origin", http.StatusOK},
		{"cross-site post", http.MethodPost, "cross-site", http.StatusForbidden},
		{"cross-site get", http.MethodGet, "cross-site", http.StatusOK},
		{"non-browser post", http.MethodPost, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://example.com/admin/save", nil)
			if tt.fetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testCSRFKey, false, "")
	called := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	h := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "http://example.com/admin/save", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if !called || w.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d", called, w.Code)
	}
}

func TestSkipCSRF(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protect := CSRF(DefaultCSRFConfig(testCSRFKey, false, ""))
	h := SkipCSRF("/api/translate")(protect(ok))

	tests := []struct {
		path string
		want int
	}{
		{"/api/translate", http.StatusOK},
		{"/admin/save", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://example.com"+tt.path, nil)
			req.Header.Set("Sec-Fetch-Site", "cross-site")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
