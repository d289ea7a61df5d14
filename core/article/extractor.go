// ABOUTME: HTML extraction pipeline turning a parsed page into normalized Markdown
// ABOUTME: Sanitize, locate the content region (or fall back), resolve the title, render, normalize

// Package article implements the HTML-to-Markdown extraction pipeline.
//
// The pipeline never mutates the caller's document: it clones a working copy
// at entry and performs every removal on that copy.
package article

import (
	"net/url"

	"digests-reader-api/core/domain"
	coreerrors "digests-reader-api/core/errors"
	"digests-reader-api/core/interfaces"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Extractor runs the HTML pipeline. It holds no per-run state, so a single
// Extractor may serve concurrent extractions of different documents.
type Extractor struct {
	selectors []ContentSelector
	extractor interfaces.ContentExtractor
	renderer  *NodeRenderer
	logger    interfaces.Logger
}

// Option configures an Extractor
type Option func(*Extractor)

// WithSelectors replaces the default content selector priority list
func WithSelectors(selectors []ContentSelector) Option {
	return func(e *Extractor) {
		e.selectors = selectors
	}
}

// NewExtractor creates an Extractor using the given extraction and conversion collaborators
func NewExtractor(extractor interfaces.ContentExtractor, converter interfaces.MarkdownConverter, logger interfaces.Logger, opts ...Option) *Extractor {
	logger = interfaces.LoggerOrNop(logger)
	e := &Extractor{
		selectors: ContentSelectors,
		extractor: extractor,
		renderer:  NewNodeRenderer(converter, logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractArticleMarkdown renders doc as Markdown
func (e *Extractor) ExtractArticleMarkdown(doc *html.Node) (string, error) {
	return e.ExtractPage(&interfaces.Page{Document: doc})
}

// ExtractPage renders a loaded page as Markdown. It fails with an
// ExtractionError when no content region and no fallback content exist.
func (e *Extractor) ExtractPage(page *interfaces.Page) (string, error) {
	if page == nil {
		return "", coreerrors.NewExtractionError("", nil)
	}

	article, err := e.Extract(page.Document, page.URL)
	if err != nil {
		return "", err
	}
	return AssembleArticle(article), nil
}

// Extract resolves the title and body of doc without the final normalization
func (e *Extractor) Extract(doc *html.Node, pageURL *url.URL) (domain.ExtractedArticle, error) {
	if doc == nil {
		return domain.ExtractedArticle{}, coreerrors.NewExtractionError(urlString(pageURL), nil)
	}

	working := dom.Clone(doc, true)
	Sanitize(working)

	var fallback *fallbackResult
	region, selectorName, found := LocateMainContent(working, e.selectors)
	if found {
		e.logger.Debug("Located main content", map[string]interface{}{
			"url":      urlString(pageURL),
			"selector": selectorName,
		})
	} else {
		e.logger.Info("Main content not found, using extraction fallback", map[string]interface{}{
			"url": urlString(pageURL),
		})

		var err error
		fallback, err = e.extractFallback(working, pageURL)
		if err != nil {
			return domain.ExtractedArticle{}, coreerrors.NewExtractionError(urlString(pageURL), err)
		}
		region = fallback.region
	}

	title, ok := headingTitle(working, region)
	if !ok {
		if fallback != nil {
			// the fallback already produced a title for this document
			title = fallback.title
		} else {
			title = e.extractorTitle(dom.Clone(doc, true), pageURL)
		}
	}

	return domain.ExtractedArticle{
		Title:        title,
		BodyMarkdown: e.renderer.Render(region),
	}, nil
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
