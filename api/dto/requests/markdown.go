// ABOUTME: Request DTOs for the Markdown rendering endpoints
// ABOUTME: Normalizes and validates URL batches before they reach the services

package requests

import (
	"fmt"
	"net/url"
	"strings"

	coreerrors "digests-reader-api/core/errors"
)

// MaxURLsPerRequest bounds a single batch
const MaxURLsPerRequest = 50

// MarkdownRequest is the body of both rendering endpoints
type MarkdownRequest struct {
	// URLs to render, processed concurrently and returned in the same order
	URLs []string `json:"urls" maxItems:"50" example:"[\"https://example.com/article\"]" doc:"Page or discussion URLs to render as Markdown"`
}

// Normalize trims every URL and checks it is absolute http(s).
// An empty batch is a validation error.
func (r *MarkdownRequest) Normalize() ([]string, error) {
	if len(r.URLs) == 0 {
		return nil, &coreerrors.ValidationError{Field: "urls", Message: "at least one URL is required"}
	}

	urls := make([]string, len(r.URLs))
	for i, raw := range r.URLs {
		trimmed := strings.TrimSpace(raw)
		u, err := url.Parse(trimmed)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, &coreerrors.ValidationError{
				Field:   fmt.Sprintf("urls[%d]", i),
				Message: fmt.Sprintf("%q is not an absolute http(s) URL", raw),
			}
		}
		urls[i] = trimmed
	}
	return urls, nil
}
