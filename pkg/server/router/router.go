// Package router provides an abstraction layer for HTTP routing.
// It defines interfaces that allow pluggable router implementations
// (gin-gonic, gorilla/mux).
package router

import "net/http"

// Router defines the interface for HTTP routing.
type Router interface {
	GET(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	POST(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	PUT(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	DELETE(path string, handler HandlerFunc, middleware ...MiddlewareFunc)

	// Group creates a route group with a common prefix and middleware.
	Group(prefix string, middleware ...MiddlewareFunc) Router

	// Use applies middleware to all routes.
	Use(middleware ...MiddlewareFunc)

	// ServeHTTP implements http.Handler.
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// HandlerFunc is the function signature for route handlers.
type HandlerFunc func(Context) error

// MiddlewareFunc wraps a HandlerFunc and returns a new HandlerFunc.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Context provides access to request and response in a router-agnostic way.
type Context interface {
	// Request returns the underlying HTTP request.
	Request() *http.Request

	// SetRequest sets the HTTP request (used by middleware that modifies it).
	SetRequest(r *http.Request)

	// Response returns the response writer.
	Response() ResponseWriter

	// SetResponse sets the response writer (used by middleware that wraps it).
	SetResponse(w ResponseWriter)

	// Param returns a URL parameter by name (e.g. /categories/:id).
	Param(name string) string

	// Bind parses the JSON request body into the provided value.
	Bind(v interface{}) error

	// JSON sends a JSON response with the given status code.
	JSON(code int, v interface{}) error

	// Get retrieves a value from the context by key.
	Get(key string) interface{}

	// Set stores a value in the context by key.
	Set(key string, value interface{})
}

// ResponseWriter wraps http.ResponseWriter to track response status.
type ResponseWriter interface {
	http.ResponseWriter

	// Status returns the HTTP status code of the response.
	Status() int

	// Written reports whether the response has been written.
	Written() bool
}
