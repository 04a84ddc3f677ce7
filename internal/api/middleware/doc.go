// Package middleware provides the HTTP middleware chain: request-ID
// tagging, request/response logging, panic recovery with error envelope
// translation, and security headers. CORS is configured directly on the
// router from the go-chi/cors package.
package middleware
