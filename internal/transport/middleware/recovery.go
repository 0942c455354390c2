package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// Recovery recovers from panics, logs the error with a stack trace, and
// responds with a 500 error envelope. http.ErrAbortHandler is re-panicked.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
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
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String(ctxutil.AttrRequestID, ctxutil.RequestIDFromCtx(r.Context())),
				)
				reject(w, http.StatusInternalServerError, "internal", "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
