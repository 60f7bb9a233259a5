package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(cfg Config) *Server {
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(Config{Port: 0, Version: "1.2.3"})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", body.Status)
	}
	if body.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", body.Version)
	}
	want := map[string]bool{
		"POST /api/notify-order-status": false,
		"POST /api/notify-admin-order":  false,
	}
	for _, e := range body.Endpoints {
		if _, ok := want[e]; ok {
			want[e] = true
		}
	}
	for e, seen := range want {
		if !seen {
			t.Errorf("expected endpoint %q in health payload", e)
		}
	}
}

func TestCORSAnyOrigin(t *testing.T) {
	srv := newTestServer(Config{Port: 0})

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	srv := newTestServer(Config{Port: 0, AllowedOrigins: []string{"https://shop.example.com"}})

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://shop.example.com", true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		got := w.Header().Get("Access-Control-Allow-Origin")
		if tt.allowed && got != tt.origin {
			t.Errorf("origin %s: expected allow header, got %q", tt.origin, got)
		}
		if !tt.allowed && got != "" {
			t.Errorf("origin %s: expected no allow header, got %q", tt.origin, got)
		}
	}
}

func TestRecovererCatchesPanics(t *testing.T) {
	srv := newTestServer(Config{Port: 0, RequestTimeout: time.Second})
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestAddr(t *testing.T) {
	if got := newTestServer(Config{Port: 3001}).Addr(); got != ":3001" {
		t.Errorf("Addr() = %q, want :3001", got)
	}
}
