package health

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	Handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected Content-Type text/plain; charset=utf-8, got %s", ct)
	}
	if body := resp.Body.String(); body != "OK" {
		t.Fatalf("expected body 'OK', got %q", body)
	}
}

func TestHealthHandlerIgnoresRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health?verbose=1", strings.NewReader(`{"check":"db"}`))
	req.Header.Set("Accept", "application/json")
	resp := httptest.NewRecorder()
	Handler(resp, req)

	if resp.Code != http.StatusOK || resp.Body.String() != "OK" {
		t.Fatalf("expected 200 'OK', got %d %q", resp.Code, resp.Body.String())
	}
}
