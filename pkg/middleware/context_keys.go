// Package middleware holds shared definitions for the HTTP middleware stack.
package middleware

// ContextKey is a typed key for router context values to avoid collisions.
type ContextKey string

const (
	// RequestIDKey is the router context key for the request ID.
	RequestIDKey ContextKey = "request_id"
)
