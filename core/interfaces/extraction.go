// ABOUTME: Contracts for the collaborators of the HTML extraction pipeline
// ABOUTME: Page loading, readability-style extraction and HTML-to-Markdown conversion

package interfaces

import (
	"context"
	"net/url"

	"golang.org/x/net/html"
)

// Page is a parsed document together with the URL it was loaded from
type Page struct {
	// URL is the final URL after redirects
	URL *url.URL

	// Document is the root node of the parsed HTML tree
	Document *html.Node
}

// PageSource is the DOM-construction collaborator. It loads and parses a page;
// the core never fetches HTML itself.
type PageSource interface {
	Load(ctx context.Context, pageURL string) (*Page, error)
}

// ExtractedContent is the result of a readability-style extraction
type ExtractedContent struct {
	Title        string
	HTMLFragment string
}

// ContentExtractor is the generic content-extraction collaborator.
// It returns errors.ErrUnparseable when it cannot find an article.
// Implementations must not mutate doc.
type ContentExtractor interface {
	Extract(doc *html.Node, pageURL *url.URL) (*ExtractedContent, error)
}

// MarkdownConverter converts an HTML fragment to Markdown using ATX headings
// and fenced code blocks.
type MarkdownConverter interface {
	Convert(innerHTML string) (string, error)
}
