package handlers

import (
	"context"
	"fmt"
	"testing"

	coreerrors "digests-reader-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "ValidationError returns 400",
			input:          &coreerrors.ValidationError{Field: "url", Message: "invalid format"},
			expectedStatus: 400,
			expectedInMsg:  "invalid format",
		},
		{
			name:           "ExtractionError returns 422",
			input:          coreerrors.NewExtractionError("https://example.com", nil),
			expectedStatus: 422,
			expectedInMsg:  "no content found",
		},
		{
			name:           "ExternalAPIError with 500 returns 503",
			input:          &coreerrors.ExternalAPIError{API: "reddit", StatusCode: 500, Message: "server error"},
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "ExternalAPIError with 429 returns 429",
			input:          &coreerrors.ExternalAPIError{API: "reddit", StatusCode: 429, Message: "rate limited"},
			expectedStatus: 429,
			expectedInMsg:  "Rate limited by external service",
		},
		{
			name:           "ExternalAPIError with 404 returns 400",
			input:          &coreerrors.ExternalAPIError{API: "reddit", StatusCode: 404, Message: "not found"},
			expectedStatus: 400,
			expectedInMsg:  "External service request error",
		},
		{
			name:           "wrapped ExternalAPIError is unwrapped",
			input:          fmt.Errorf("fetch: %w", &coreerrors.ExternalAPIError{API: "reddit", StatusCode: 502}),
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "deadline returns 504",
			input:          fmt.Errorf("load: %w", context.DeadlineExceeded),
			expectedStatus: 504,
			expectedInMsg:  "Request timed out",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("boom"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			var statusErr huma.StatusError
			require.ErrorAs(t, result, &statusErr)
			assert.Equal(t, tt.expectedStatus, statusErr.GetStatus())
			assert.Contains(t, result.Error(), tt.expectedInMsg)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.NoError(t, toHumaError(nil))
}
