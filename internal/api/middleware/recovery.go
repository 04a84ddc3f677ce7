package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/calref/user-api/internal/api/shared"
	"github.com/calref/user-api/internal/platform/logger"
)

// Recovery translates any panic escaping the layers below into the 500
// error envelope. The panic value and stack trace are logged server-side
// only; the client sees the generic detail. It sits outside the request
// logging middleware so that logging can record the failure and re-panic
// without swallowing it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// The connection is gone; nothing useful to write.
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("unhandled panic",
				slog.String("request_id", shared.GetRequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))

			shared.RespondWithError(w, r,
				http.StatusInternalServerError,
				"Internal server error",
				shared.ErrorCodeInternal)
		}()

		next.ServeHTTP(w, r)
	})
}
