// Package apperr defines the typed errors shared by the domain, application and HTTP layers.
package apperr

import "fmt"

// ValidationError is returned when caller-supplied input violates a constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError without a field.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewFieldError creates a ValidationError for the named input field.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnauthorizedError is returned when credentials or tokens are missing or wrong.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NewUnauthorizedError creates an UnauthorizedError.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// UpstreamError is returned when an external service answered with a failure.
type UpstreamError struct {
	Service string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// NewUpstreamError creates an UpstreamError.
func NewUpstreamError(service, message string) *UpstreamError {
	return &UpstreamError{Service: service, Message: message}
}

// TimeoutError is returned when an external service did not answer in time.
type TimeoutError struct {
	Service string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out", e.Service)
}

// NewTimeoutError creates a TimeoutError.
func NewTimeoutError(service string) *TimeoutError {
	return &TimeoutError{Service: service}
}
