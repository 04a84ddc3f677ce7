// Package shared holds response and context helpers used by handlers and
// middleware alike: the error envelope writer, request-ID propagation,
// and client address resolution.
package shared
