// Package middleware holds the HTTP middleware chain: authentication,
// request logging, edge rate limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
)

// contextKey is unexported to prevent collisions with other packages.
type contextKey int

const accountIDContextKey contextKey = iota

// ContextGetAccountID returns the authenticated account id, or "" when the
// request was not authenticated.
func ContextGetAccountID(ctx context.Context) string {
	id, _ := ctx.Value(accountIDContextKey).(string)
	return id
}

// AuthMiddleware authenticates bearer tokens against a static token map.
// Interactive sign-in lives outside this backend; the API serves trusted
// clients holding issued tokens.
type AuthMiddleware struct {
	tokens map[string]string
	logger logging.Logger
}

// NewAuthMiddleware builds the middleware from a token -> account id map.
func NewAuthMiddleware(tokens map[string]string, logger logging.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger.Named("auth")}
}

// Handler rejects requests without a recognised bearer token and injects
// the account id into the request context otherwise.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(w)
			return
		}
		accountID, ok := m.tokens[token]
		if !ok {
			m.logger.Warn("rejected unknown bearer token",
				logging.String("path", r.URL.Path))
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), accountIDContextKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthenticated","message":"missing or invalid bearer token"}`))
}
