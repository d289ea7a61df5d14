// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Fetches discussion payloads with exponential backoff on transient failures

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"digests-reader-api/core/interfaces"
)

const (
	defaultMaxRetries = 3
	defaultUserAgent  = "DigestsReader/1.0"
	defaultAccept     = "application/json, */*;q=0.5"
)

// Options configures a StandardHTTPClient
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Accept     string
	MaxRetries int

	// BaseBackoff is the delay before the first retry; it doubles each attempt
	BaseBackoff time.Duration

	// Transport overrides http.DefaultTransport when set
	Transport http.RoundTripper
}

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client *http.Client
	opts   Options
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return NewStandardHTTPClientWithOptions(Options{Timeout: timeout})
}

// NewStandardHTTPClientWithOptions creates a client, filling unset options with defaults
func NewStandardHTTPClientWithOptions(opts Options) *StandardHTTPClient {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Accept == "" {
		opts.Accept = defaultAccept
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 100 * time.Millisecond
	}

	return &StandardHTTPClient{
		client: &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		opts:   opts,
	}
}

// Get performs an HTTP GET request. Transport errors and 5xx responses are
// retried with exponential backoff; 4xx responses are returned as-is.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.opts.BaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", c.opts.Accept)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if resp.StatusCode < 500 || attempt == c.opts.MaxRetries-1 {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       resp.Body,
				headers:    resp.Header,
			}, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("GET %s failed after %d attempts: %w", url, c.opts.MaxRetries, lastErr)
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
