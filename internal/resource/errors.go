// Package resource implements generic CRUD access to a single document
// collection with sequential ID assignment and merge-patch update semantics.
// Each service instantiates it once for its own resource type.
package resource

import "fmt"

// ValidationError reports a field value violating a resource rule.
// It is surfaced to clients as HTTP 400 with the field and reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError reports a driver-level failure of a store operation.
// It is surfaced to clients as HTTP 500; the cause is kept for operator
// diagnostics only.
type StorageError struct {
	Resource string
	Op       string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Resource, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(resource, op string, err error) *StorageError {
	return &StorageError{Resource: resource, Op: op, Err: err}
}
