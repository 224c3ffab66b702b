// Package middleware provides HTTP middlewares for session handling and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const tokenKey ctxKey = "session_token"

// SessionCookie is the cookie carrying the browser's session token.
const SessionCookie = "chat_session"

// TokenIssuer creates a new session token with a fresh context behind it.
type TokenIssuer interface {
	Issue() string
}

// WithSession ensures every request carries a session token. A request
// without the session cookie (or with an empty one) gets a freshly issued
// token and a Set-Cookie on the response. The token is stored in the
// request context for handlers to resolve their SessionContext.
func WithSession(issuer TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				token = c.Value
			} else {
				token = issuer.Issue()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
				})
			}
			ctx := context.WithValue(r.Context(), tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTokenFromContext extracts the session token placed by WithSession.
// Returns an empty string if not found.
func GetTokenFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(tokenKey).(string); ok {
		return s
	}
	return ""
}
