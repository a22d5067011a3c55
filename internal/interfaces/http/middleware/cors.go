package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware answers preflight requests and stamps response headers
// for the configured origins.  An empty origin list allows any origin.
type CORSMiddleware struct {
	origins map[string]bool
	any     bool
}

// NewCORSMiddleware builds the middleware from an allow list.
func NewCORSMiddleware(origins []string) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]bool, len(origins))}
	for _, o := range origins {
		if o == "*" {
			m.any = true
		}
		m.origins[o] = true
	}
	if len(origins) == 0 {
		m.any = true
	}
	return m
}

// Handler applies the CORS headers and short-circuits OPTIONS preflights.
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (m.any || m.origins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{
				http.MethodGet, http.MethodPost, http.MethodOptions,
			}, ", "))
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
