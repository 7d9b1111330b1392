package errors

import (
	stderrors "errors"
	"fmt"
)

// DecodeError is returned when a success-range response body cannot be
// shaped into the expected result.
type DecodeError struct {
	// Target is the Go type the body was decoded into.
	Target string
	// Reason describes what was wrong with the body.
	Reason string
	// Err is the underlying codec or validation error.
	Err error
}

// NewDecodeError creates a DecodeError.
func NewDecodeError(target, reason string, err error) *DecodeError {
	return &DecodeError{Target: target, Reason: reason, Err: err}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("arangodb: decode %s: %s: %v", e.Target, e.Reason, e.Err)
	}
	return fmt.Sprintf("arangodb: decode %s: %s", e.Target, e.Reason)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is returned before any request is sent when an identifier
// or payload is structurally invalid.
type ValidationError struct {
	// Field names the argument or struct field that failed.
	Field string
	// Value is the rejected value, when it is printable.
	Value string
	// Reason describes the rule that was violated.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// WithCause sets the underlying error and returns the receiver.
func (e *ValidationError) WithCause(err error) *ValidationError {
	e.Err = err
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("arangodb: invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("arangodb: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Err }

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var e *DecodeError
	return stderrors.As(err, &e)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return stderrors.As(err, &e)
}
