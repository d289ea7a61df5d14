// ABOUTME: Shared helpers for page sources
// ABOUTME: URL validation and HTML parsing into the document tree handed to the core

// Package page contains the DOM-construction collaborators that load pages
// for the article pipeline.
package page

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	coreerrors "digests-reader-api/core/errors"
	"digests-reader-api/core/interfaces"

	"golang.org/x/net/html"
)

// ParseURL validates an absolute http(s) URL
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "missing host"}
	}
	return u, nil
}

// NewPage parses body as HTML loaded from finalURL
func NewPage(finalURL *url.URL, body []byte) (*interfaces.Page, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", finalURL, err)
	}
	return &interfaces.Page{URL: finalURL, Document: doc}, nil
}

// IsHTML reports whether a Content-Type header describes an HTML document.
// An empty header is accepted so servers that omit it still work.
func IsHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
