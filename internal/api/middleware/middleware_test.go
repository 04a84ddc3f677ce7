package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calref/user-api/internal/api/middleware"
	"github.com/calref/user-api/internal/api/shared"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an ID when none supplied", func(t *testing.T) {
		t.Parallel()

		var seen string
		handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetRequestID(r.Context())
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err, "generated IDs are UUIDs")
		assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader),
			"response header carries the same ID the handler saw")
	})

	t.Run("echoes a client-supplied ID", func(t *testing.T) {
		t.Parallel()

		var seen string
		handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetRequestID(r.Context())
		}))

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set(middleware.RequestIDHeader, "client-supplied-id")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "client-supplied-id", seen)
		assert.Equal(t, "client-supplied-id", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	serve := func(debug bool) http.Header {
		handler := middleware.SecurityHeaders(debug)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		return w.Header()
	}

	t.Run("hardening headers on every response", func(t *testing.T) {
		t.Parallel()

		h := serve(false)
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
		assert.Equal(t, "1; mode=block", h.Get("X-XSS-Protection"))
		assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
		assert.Equal(t, "geolocation=(), microphone=(), camera=()", h.Get("Permissions-Policy"))
		assert.Equal(t, "max-age=31536000; includeSubDomains; preload",
			h.Get("Strict-Transport-Security"))
	})

	t.Run("no HSTS in debug mode", func(t *testing.T) {
		t.Parallel()

		h := serve(true)
		assert.Empty(t, h.Get("Strict-Transport-Security"))
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	})
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes the 500 envelope", func(t *testing.T) {
		t.Parallel()

		handler := middleware.Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("something broke")
		}))

		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		r = r.WithContext(shared.WithRequestID(r.Context(), "req-1"))

		w := httptest.NewRecorder()
		require.NotPanics(t, func() { handler.ServeHTTP(w, r) })

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Internal server error", resp.Detail)
		assert.Equal(t, "INTERNAL_ERROR", resp.ErrorCode)
		assert.Equal(t, "req-1", resp.RequestID)
		assert.NotContains(t, w.Body.String(), "something broke",
			"panic values stay server-side")
	})

	t.Run("normal requests pass through", func(t *testing.T) {
		t.Parallel()

		handler := middleware.Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestRequestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs start and completion", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		handler := middleware.RequestLogging(base)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":1}`))
			}))

		r := httptest.NewRequest("POST", "/api/v1/users?skip=0", nil)
		r = r.WithContext(shared.WithRequestID(r.Context(), "req-log-1"))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var started, completed map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &started))
		require.NoError(t, json.Unmarshal(lines[1], &completed))

		assert.Equal(t, "request started", started["msg"])
		assert.Equal(t, "req-log-1", started["request_id"])
		assert.Equal(t, "POST", started["method"])
		assert.Equal(t, "/api/v1/users", started["path"])
		assert.Equal(t, "skip=0", started["query"])

		assert.Equal(t, "request completed", completed["msg"])
		assert.Equal(t, float64(http.StatusCreated), completed["status_code"])
		assert.Equal(t, float64(len(`{"id":1}`)), completed["response_size"])
	})

	t.Run("logs and re-raises panics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		handler := middleware.RequestLogging(base)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("boom")
			}))

		w := httptest.NewRecorder()
		assert.Panics(t, func() {
			handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		}, "logging must not swallow the panic")

		assert.Contains(t, buf.String(), "request failed")
		assert.NotContains(t, buf.String(), "request completed")
	})

	t.Run("installs a request-scoped logger in the context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		handler := middleware.RequestLogging(base)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Handlers log through the context and inherit request_id.
				shared.RespondWithError(w, r, http.StatusNotFound,
					"User not found", "HTTP_404")
			}))

		r := httptest.NewRequest("GET", "/api/v1/users/9", nil)
		r = r.WithContext(shared.WithRequestID(r.Context(), "req-ctx-1"))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Contains(t, buf.String(), "client error")
		assert.Contains(t, buf.String(), "req-ctx-1")
	})
}
