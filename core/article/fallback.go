package article

import (
	"fmt"
	"net/url"
	"strings"

	coreerrors "digests-reader-api/core/errors"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fallbackResult is the outcome of a readability-style extraction
type fallbackResult struct {
	region *html.Node
	title  string
}

// extractFallback asks the content extractor for the article and parses its
// fragment into a detached container owned only by this run.
func (e *Extractor) extractFallback(doc *html.Node, pageURL *url.URL) (*fallbackResult, error) {
	if e.extractor == nil {
		return nil, coreerrors.ErrUnparseable
	}

	content, err := e.extractor.Extract(doc, pageURL)
	if err != nil {
		return nil, err
	}
	if content == nil || strings.TrimSpace(content.HTMLFragment) == "" {
		return nil, coreerrors.ErrUnparseable
	}

	region, err := parseFragment(content.HTMLFragment)
	if err != nil {
		return nil, fmt.Errorf("parse extracted fragment: %w", err)
	}

	return &fallbackResult{
		region: region,
		title:  strings.TrimSpace(content.Title),
	}, nil
}

// parseFragment parses markup as the children of a new <div>
func parseFragment(markup string) (*html.Node, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// extractorTitle re-runs the extractor against doc purely for its title
func (e *Extractor) extractorTitle(doc *html.Node, pageURL *url.URL) string {
	if e.extractor == nil {
		return ""
	}

	content, err := e.extractor.Extract(doc, pageURL)
	if err != nil || content == nil {
		e.logger.Debug("Extractor could not recover a title", map[string]interface{}{
			"url":   urlString(pageURL),
			"error": errString(err),
		})
		return ""
	}
	return strings.TrimSpace(content.Title)
}
