package shared

import (
	"context"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// RequestIDKey is the key for the request ID in the request context.
const RequestIDKey ContextKey = "requestID"

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context, or an empty
// string if none was attached.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// NewRequestID generates a fresh request identifier.
func NewRequestID() string {
	return uuid.New().String()
}
