package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/validation"
)

// HeaderRequestID carries the request ID on requests and responses.
const HeaderRequestID = "X-Request-Id"

// RequestID ensures every request carries a UUID request ID. A well-formed
// incoming ID is kept; anything else is replaced. The ID is echoed in the
// response and stored in the request context for logging.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || validation.New().OptionalUUID(HeaderRequestID, id).HasErrors() {
				id = uuid.NewString()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
		})
	}
}
