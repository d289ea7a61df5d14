// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates fatal extraction failures from locally recovered parse failures

package errors

import (
	"errors"
	"fmt"
)

// Sentinel causes used inside ExtractionError and by content extractors
var (
	// ErrNoContent means neither a content region nor a usable fallback was found
	ErrNoContent = errors.New("no content found")

	// ErrUnparseable is returned by a content extractor that cannot find an article
	ErrUnparseable = errors.New("content could not be parsed")
)

// ExtractionError is fatal for a single article extraction
type ExtractionError struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.URL != "" {
		return fmt.Sprintf("extraction error for %s: %s", e.URL, msg)
	}
	return fmt.Sprintf("extraction error: %s", msg)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError builds the "no content found" extraction error
func NewExtractionError(url string, cause error) *ExtractionError {
	if cause == nil {
		cause = ErrNoContent
	}
	return &ExtractionError{
		URL:    url,
		Reason: ErrNoContent.Error(),
		Err:    cause,
	}
}

// ParseError means a discussion payload did not have the expected shape.
// Callers log it and degrade to "no discussion".
type ParseError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse error in %s", e.Stage)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an unexpected response from a remote collaborator
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
