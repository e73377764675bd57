package middleware

import (
	"net/http"
	"strings"
)

// Vary adds each of headers to the Vary response header unless an earlier
// handler already listed it. CORS adds Origin on its own.
func Vary(headers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, name := range headers {
				if !varies(h, name) {
					h.Add("Vary", name)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func varies(h http.Header, name string) bool {
	for _, v := range h.Values("Vary") {
		for _, field := range strings.Split(v, ",") {
			if f := strings.TrimSpace(field); f == "*" || strings.EqualFold(f, name) {
				return true
			}
		}
	}
	return false
}
