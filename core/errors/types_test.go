package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionError_Error(t *testing.T) {
	err := NewExtractionError("https://example.com/a", nil)

	assert.Equal(t, "extraction error for https://example.com/a: no content found", err.Error())
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestExtractionError_WithoutURL(t *testing.T) {
	err := &ExtractionError{Reason: "no content found"}

	assert.Equal(t, "extraction error: no content found", err.Error())
}

func TestExtractionError_UnwrapsCause(t *testing.T) {
	err := NewExtractionError("", ErrUnparseable)

	assert.ErrorIs(t, err, ErrUnparseable)
	assert.Contains(t, err.Error(), "no content found")
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Stage: "post listing", Err: errors.New("missing children")}

	assert.Equal(t, "parse error in post listing: missing children", err.Error())
	assert.Equal(t, "parse error in payload", (&ParseError{Stage: "payload"}).Error())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "urls",
		Message: "must not be empty",
	}

	expected := "validation error on field 'urls': must not be empty"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestExternalAPIError_Error(t *testing.T) {
	err := &ExternalAPIError{
		StatusCode: 503,
		Message:    "service unavailable",
		API:        "reddit",
	}

	expected := "external API error from reddit: 503 - service unavailable"
	if err.Error() != expected {
		t.Errorf("ExternalAPIError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsHelpers_WrappedErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"extraction direct", NewExtractionError("u", nil), IsExtraction, true},
		{"extraction wrapped", fmt.Errorf("ctx: %w", NewExtractionError("u", nil)), IsExtraction, true},
		{"parse wrapped", WrapError(&ParseError{Stage: "x"}, "render"), IsParse, true},
		{"validation", &ValidationError{Field: "f"}, IsValidation, true},
		{"external", &ExternalAPIError{StatusCode: 500}, IsExternalAPI, true},
		{"plain error is not extraction", errors.New("boom"), IsExtraction, false},
		{"parse is not validation", &ParseError{Stage: "x"}, IsValidation, false},
		{"nil is not external", nil, IsExternalAPI, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "context"))

	base := errors.New("base")
	wrapped := WrapError(base, "fetching page")
	assert.Equal(t, "fetching page: base", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}
