package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/calref/user-api/internal/platform/logger"
	"github.com/calref/user-api/internal/redact"
)

// Error codes carried in the error envelope.
const (
	ErrorCodeInternal   = "INTERNAL_ERROR"
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeDatabase   = "DATABASE_ERROR"
)

// HTTPErrorCode returns the envelope error code for a plain HTTP status,
// e.g. "HTTP_404".
func HTTPErrorCode(status int) string {
	return fmt.Sprintf("HTTP_%d", status)
}

// ErrorResponse is the uniform error envelope returned by every failure
// path, success paths never use it.
type ErrorResponse struct {
	Detail           string       `json:"detail"`
	RequestID        string       `json:"request_id"`
	ErrorCode        string       `json:"error_code"`
	ValidationErrors []FieldError `json:"validation_errors,omitempty"`
}

// FieldError describes a single failed input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			"error", err)
	}
}

// RespondWithError writes the error envelope with the given status,
// client-safe detail, and error code. The request ID is taken from the
// request context. Statuses 401, 403, and 404 additionally produce a
// security audit log entry.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, detail, code string) {
	respondError(w, r, status, detail, code, nil, nil)
}

// RespondWithErrorAndLog is RespondWithError with the underlying error
// attached to the server-side log. The raw error text never reaches the
// client and is redacted before logging.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	detail, code string,
	err error,
) {
	respondError(w, r, status, detail, code, err, nil)
}

// RespondWithValidationErrors writes the 422 envelope with the per-field
// failure list.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, fields []FieldError) {
	respondError(w, r, http.StatusUnprocessableEntity,
		"Validation error", ErrorCodeValidation, nil, fields)
}

func respondError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	detail, code string,
	err error,
	fields []FieldError,
) {
	requestID := GetRequestID(r.Context())
	log := logger.FromContext(r.Context())

	attrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", status,
		"detail", detail,
		"error_code", code,
	}
	if err != nil {
		attrs = append(attrs, "error", redact.Error(err))
	}
	if len(fields) > 0 {
		attrs = append(attrs, "validation_errors", fields)
	}

	switch {
	case status >= http.StatusInternalServerError:
		log.Error("server error", attrs...)
	default:
		log.Warn("client error", attrs...)
	}

	// 401/403/404 are probing-relevant and get an extra audit entry with
	// caller identity, independent of the request log.
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		log.Warn("security-relevant HTTP error",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", status,
			"client_ip", ClientIP(r),
			"user_agent", r.UserAgent(),
			"audit", true)
	}

	RespondWithJSON(w, r, status, ErrorResponse{
		Detail:           detail,
		RequestID:        requestID,
		ErrorCode:        code,
		ValidationErrors: fields,
	})
}
