package interfaces

import (
	"context"
	"io"
)

// HTTPClient is the network-fetch collaborator used for raw JSON payloads.
// Implementations own timeouts and retries; the core never retries itself.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller must close it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "" if absent.
	Header(key string) string
}
