// Package health serves the liveness check.
package health

import (
	"io"
	"net/http"
)

// Body is the exact response payload.
const Body = "OK"

// Handler writes a plaintext OK. It ignores the request entirely.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, Body)
}
