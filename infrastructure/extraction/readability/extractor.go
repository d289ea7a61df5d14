// ABOUTME: Readability-based content extractor used as the article fallback
// ABOUTME: Wraps go-shiori/go-readability behind the core ContentExtractor contract

package readability

import (
	"fmt"
	"net/url"
	"strings"

	coreerrors "digests-reader-api/core/errors"
	"digests-reader-api/core/interfaces"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var _ interfaces.ContentExtractor = (*Extractor)(nil)

// Extractor implements interfaces.ContentExtractor
type Extractor struct{}

// NewExtractor creates an Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs readability over doc. readability works on its own copy of
// the tree so doc is left untouched.
func (e *Extractor) Extract(doc *html.Node, pageURL *url.URL) (*interfaces.ExtractedContent, error) {
	if doc == nil {
		return nil, coreerrors.ErrUnparseable
	}
	if pageURL == nil {
		pageURL = &url.URL{}
	}

	article, err := readability.FromDocument(doc, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrUnparseable, err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, coreerrors.ErrUnparseable
	}

	return &interfaces.ExtractedContent{
		Title:        strings.TrimSpace(article.Title),
		HTMLFragment: article.Content,
	}, nil
}
