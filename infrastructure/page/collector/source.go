// ABOUTME: Page source that loads static HTML with gocolly
// ABOUTME: Honours robots.txt, request timeouts and charset detection before handing a parsed tree to the core

package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	coreerrors "digests-reader-api/core/errors"
	"digests-reader-api/core/interfaces"
	"digests-reader-api/infrastructure/page"
	"digests-reader-api/infrastructure/robots"

	"github.com/gocolly/colly"
)

// Options configures a Source
type Options struct {
	UserAgent string
	Timeout   time.Duration

	// MaxBodySize limits a page body in bytes; 0 keeps the colly default
	MaxBodySize int
}

// Source implements interfaces.PageSource with a colly collector
type Source struct {
	base    *colly.Collector
	timeout time.Duration
	robots  *robots.Guard
	logger  interfaces.Logger
}

// NewSource creates a Source. A nil guard disables robots.txt checks.
func NewSource(opts Options, guard *robots.Guard, logger interfaces.Logger) *Source {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	base := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
		colly.DetectCharset(),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	if opts.MaxBodySize > 0 {
		base.MaxBodySize = opts.MaxBodySize
	}

	return &Source{
		base:    base,
		timeout: opts.Timeout,
		robots:  guard,
		logger:  interfaces.LoggerOrNop(logger),
	}
}

// Load fetches pageURL and parses it. Non-HTML responses and HTTP errors
// are reported as ExternalAPIError.
func (s *Source) Load(ctx context.Context, pageURL string) (*interfaces.Page, error) {
	u, err := page.ParseURL(pageURL)
	if err != nil {
		return nil, err
	}
	if s.robots != nil {
		if err := s.robots.Check(ctx, u); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	c := s.base.Clone()
	c.SetRequestTimeout(timeout)

	var (
		body     []byte
		finalURL *url.URL
		loadErr  error
	)
	c.OnResponse(func(r *colly.Response) {
		contentType := r.Headers.Get("Content-Type")
		if !page.IsHTML(contentType) {
			loadErr = &coreerrors.ExternalAPIError{
				API:        u.Host,
				StatusCode: r.StatusCode,
				Message:    fmt.Sprintf("unsupported content type %q", contentType),
			}
			return
		}
		body = r.Body
		finalURL = r.Request.URL
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			loadErr = &coreerrors.ExternalAPIError{
				API:        u.Host,
				StatusCode: r.StatusCode,
				Message:    err.Error(),
			}
			return
		}
		loadErr = err
	})

	if err := c.Visit(u.String()); err != nil && loadErr == nil {
		loadErr = err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if loadErr != nil {
		s.logger.Debug("Page load failed", map[string]interface{}{
			"url":   u.String(),
			"error": loadErr.Error(),
		})
		return nil, loadErr
	}
	if finalURL == nil {
		return nil, fmt.Errorf("no response received for %s", u)
	}

	return page.NewPage(finalURL, body)
}
