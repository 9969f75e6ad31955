// Package logger provides structured logging for the services.
package logger

import "context"

// Logger is the structured logging interface used throughout the services.
// All log methods accept a message followed by key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With creates a child logger whose entries always carry the given
	// key-value pairs.
	With(args ...any) Logger

	// WithContext creates a child logger that carries the request ID found
	// in ctx, if any.
	WithContext(ctx context.Context) Logger
}
