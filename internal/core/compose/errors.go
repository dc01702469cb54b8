// Package compose contains pure functions for parsing and checking the
// project's Docker Compose development stack. No I/O happens here; callers
// read the file and hand in the YAML.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyInput = errors.New("compose file is empty")

	// YAML parsing errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// Compose structure errors
	ErrNoServices = errors.New("compose file must define at least one service")

	// Service validation errors
	ErrServiceNoImage = errors.New("service must have image or build")

	// Stack topology errors
	ErrMissingService   = errors.New("required service is missing")
	ErrMissingDependsOn = errors.New("service is missing a depends_on entry")
	ErrMissingEnv       = errors.New("service is missing an environment variable")
	ErrMissingVolume    = errors.New("named volume is missing")
	ErrNoPublishedPort  = errors.New("service publishes no port")
)

// StackError wraps errors with context about which part of the stack failed.
type StackError struct {
	Field   string // e.g. "services.web.depends_on"
	Message string
	Err     error
}

func (e *StackError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// NewStackError creates a new StackError.
func NewStackError(field, message string, err error) *StackError {
	return &StackError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
