package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionCookie is the cookie the browser client carries its token in. API
// clients use the Authorization header instead.
const SessionCookie = "clutch_session"

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// Auth returns middleware that resolves the request's session token, from the
// Authorization header or the session cookie, and injects the session into
// context. A cookie that no longer resolves is cleared so the browser stops
// presenting it.
func Auth(sessions sessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromCookie := extractToken(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing session token")
				return
			}
			sess, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				if fromCookie {
					ClearSessionCookie(w)
				}
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the resolved session from the request context.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func extractToken(r *http.Request) (token string, fromCookie bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer "), false
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}
