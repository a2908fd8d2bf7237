package middleware

import (
	"net/http"
	"regexp"

	"github.com/tuanvumaihuynh/shopster-web/pkg/correlationid"
)

var validCorrelationID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// CorrelationID reuses a well-formed incoming correlation id or assigns a new
// one, and echoes it in the response.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(correlationid.Header)
			if !validCorrelationID.MatchString(id) {
				id = correlationid.New()
			}

			w.Header().Set(correlationid.Header, id)
			next.ServeHTTP(w, r.WithContext(correlationid.NewContext(r.Context(), id)))
		})
	}
}
