package middleware

import (
	"net/http"

	"github.com/calref/user-api/internal/api/shared"
)

// RequestIDHeader is the header carrying the request identifier in both
// directions.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request identifier to the context and echoes it on
// the response. A client-supplied X-Request-ID is propagated unchanged;
// otherwise a fresh one is generated. This middleware must run before any
// middleware or handler that logs or writes error envelopes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = shared.NewRequestID()
		}

		ctx := shared.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
