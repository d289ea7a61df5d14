// ABOUTME: Error types and handling for the Digests reader library
// ABOUTME: Provides structured errors with context for library operations

package digests

import (
	"errors"
	"fmt"

	coreerrors "digests-reader-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeExtraction indicates no article content could be found
	ErrorTypeExtraction ErrorType = "extraction"

	// ErrorTypeNetwork indicates a network error
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing indicates input that could not be parsed
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsExtractionError checks if an error means no article content was found
func IsExtractionError(err error) bool {
	return hasType(err, ErrorTypeExtraction)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return hasType(err, ErrorTypeNetwork)
}

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool {
	return hasType(err, ErrorTypeParsing)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// wrapCoreError classifies an error returned by the core services
func wrapCoreError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case coreerrors.IsValidation(err):
		return NewError(ErrorTypeValidation, err.Error()).WithCause(err)
	case coreerrors.IsExtraction(err):
		return NewError(ErrorTypeExtraction, err.Error()).WithCause(err)
	case coreerrors.IsParse(err):
		return NewError(ErrorTypeParsing, err.Error()).WithCause(err)
	case coreerrors.IsExternalAPI(err):
		return NewError(ErrorTypeNetwork, err.Error()).WithCause(err)
	default:
		return NewError(ErrorTypeInternal, err.Error()).WithCause(err)
	}
}
