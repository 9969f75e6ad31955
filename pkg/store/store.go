// Package store defines the minimal lifecycle contract for storage adapters.
package store

import "context"

// Adapter is the lifecycle and health contract for storage adapters.
type Adapter interface {
	HealthCheck(ctx context.Context) error
	Close() error
}
