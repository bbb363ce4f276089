package middleware

import (
	"net/http"
	"strings"
)

// RequireAdmin returns middleware that only passes sessions whose identity
// email is on the admin list. It must run after Auth.
func RequireAdmin(adminEmails []string) func(http.Handler) http.Handler {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(e)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok || sess.Identity == nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !admins[strings.ToLower(sess.Identity.Email)] {
				writeJSONError(w, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
