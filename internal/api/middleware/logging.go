package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/calref/user-api/internal/api/shared"
	"github.com/calref/user-api/internal/platform/logger"
)

// RequestLogging records a start event for every request and a completion
// event with duration, status, and response size. It also installs a
// request-scoped logger (tagged with the request ID) into the context for
// every layer below. A panic is logged with its duration and then
// re-raised so the Recovery middleware above still produces the response;
// logging never swallows an error.
func RequestLogging(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := shared.GetRequestID(r.Context())

			log := base.With(slog.String("request_id", requestID))
			ctx := logger.WithLogger(r.Context(), log)
			r = r.WithContext(ctx)

			log.Info("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("client_ip", shared.ClientIP(r)),
				slog.String("user_agent", r.UserAgent()))

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				duration := time.Since(start)
				if rec := recover(); rec != nil {
					log.Error("request failed",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Duration("duration", duration),
						slog.String("panic", fmt.Sprint(rec)))
					panic(rec)
				}

				log.Info("request completed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status_code", rw.status),
					slog.Duration("duration", duration),
					slog.Int("response_size", rw.bytes))
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// responseWriter captures the status code and body size written by the
// layers below.
type responseWriter struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}
