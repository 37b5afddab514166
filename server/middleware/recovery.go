package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

// Recovery returns middleware that turns a handler panic into a JSON error
// response. Panics carrying an *errors.AppError keep their code and status.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				appErr := errors.FromPanic(rec)
				log.WithContext(r.Context()).Error("panic recovered", logger.MergeWithError(logger.Fields(
					"method", r.Method,
					logger.FieldPath, r.URL.Path,
					"stack", string(debug.Stack()),
				), appErr))

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(appErr.HTTPStatus)
				_ = json.NewEncoder(w).Encode(appErr.ToResponse())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
