package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kbukum/seqkit/errors"
)

// BodySizeLimit returns middleware that restricts request bodies to maxBytes.
// A non-positive limit disables the check.
func BodySizeLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				appErr := errors.New(errors.ErrCodeLimitExceeded, "request body too large", http.StatusRequestEntityTooLarge).
					WithDetail("max_bytes", maxBytes)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(appErr.HTTPStatus)
				_ = json.NewEncoder(w).Encode(appErr.ToResponse())
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
