package middleware

import (
	"net/http"

	"github.com/tuanvumaihuynh/shopster-web/internal/session"
)

// Session attaches the signed-in session, if any, to the request context.
func Session(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := m.Load(r); ok {
				r = r.WithContext(session.NewContext(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}
