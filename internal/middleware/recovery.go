package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"filesfeed/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response.
//
// It wraps the ServeMux directly, inside auth, so the log entry carries the
// matched route and the request owner. When the handler already started the
// response, only the log entry is written.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				route := r.Pattern
				if route == "" {
					route = "unmatched"
				}
				logger.Error("handler panicked",
					"panic", p,
					"method", r.Method,
					"route", route,
					"path", r.URL.Path,
					"owner", httputil.GetOwnerID(r),
					"response_started", rec.wrote,
					"stack", string(debug.Stack()),
				)

				if !rec.wrote {
					httputil.RespondError(rec, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
