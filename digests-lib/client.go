// ABOUTME: Main client for the Digests reader library
// ABOUTME: Renders articles and discussions as Markdown without running the HTTP server

package digests

import (
	"context"
	"net/url"
	"strings"
	"time"

	"digests-reader-api/core/article"
	"digests-reader-api/core/discussion"
	"digests-reader-api/core/domain"
	"digests-reader-api/core/interfaces"
	"digests-reader-api/core/reader"
	"digests-reader-api/core/reddit"

	"golang.org/x/net/html"
)

// Client is the main entry point for the library
type Client struct {
	articles    *reader.Service
	discussions *reddit.Service
	extractor   *article.Extractor
	pipeline    *discussion.Pipeline
	config      Config
}

// Config holds the configuration for the client
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Pages      interfaces.PageSource
	Extractor  interfaces.ContentExtractor
	Converter  interfaces.MarkdownConverter
	Logger     interfaces.Logger

	// Location formats discussion dates
	Location *time.Location

	CacheTTL       time.Duration
	MaxConcurrency int

	closers []func() error
}

// Article is a rendered web page
type Article struct {
	URL      string
	Title    string
	Markdown string
	Err      error
}

// Discussion is a rendered discussion thread. Empty is set when the
// payload held no discussion.
type Discussion struct {
	URL      string
	Markdown string
	Empty    bool
	Err      error
}

// NewClient creates a client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:      config.Cache,
		HTTPClient: config.HTTPClient,
		Pages:      config.Pages,
		Extractor:  config.Extractor,
		Converter:  config.Converter,
		Logger:     config.Logger,
	}

	return &Client{
		articles: reader.NewService(deps, reader.Options{
			CacheTTL:       config.CacheTTL,
			MaxConcurrency: config.MaxConcurrency,
		}),
		discussions: reddit.NewService(deps, reddit.Options{
			CacheTTL:       config.CacheTTL,
			MaxConcurrency: config.MaxConcurrency,
			Location:       config.Location,
		}),
		extractor: article.NewExtractor(config.Extractor, config.Converter, config.Logger),
		pipeline:  discussion.NewPipeline(config.Location, config.Logger),
		config:    config,
	}, nil
}

// Close releases resources the client created itself
func (c *Client) Close() error {
	var first error
	for _, closeFn := range c.config.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	c.config.closers = nil
	return first
}

// Article loads pageURL and renders it
func (c *Client) Article(ctx context.Context, pageURL string) (*Article, error) {
	view, err := c.articles.ExtractArticle(ctx, pageURL)
	if err != nil {
		return nil, wrapCoreError(err)
	}
	return &Article{URL: view.URL, Title: view.Title, Markdown: view.Markdown}, nil
}

// Articles renders every URL concurrently; results keep the input order
func (c *Client) Articles(ctx context.Context, urls []string) []*Article {
	views := c.articles.ExtractArticles(ctx, urls)
	out := make([]*Article, len(views))
	for i, v := range views {
		a := &Article{URL: v.URL, Title: v.Title, Markdown: v.Markdown}
		if v.Status == domain.StatusError {
			a.Err = NewError(ErrorTypeExtraction, v.Error).WithContext("url", v.URL)
		}
		out[i] = a
	}
	return out
}

// Discussion fetches a thread and renders it
func (c *Client) Discussion(ctx context.Context, threadURL string) (*Discussion, error) {
	view, err := c.discussions.FetchDiscussion(ctx, threadURL)
	if err != nil {
		return nil, wrapCoreError(err)
	}
	return &Discussion{URL: view.URL, Markdown: view.Markdown, Empty: view.Status == domain.StatusEmpty}, nil
}

// ArticleFromHTML renders markup that was loaded elsewhere. pageURL may be
// empty; it is only passed to the fallback extractor.
func (c *Client) ArticleFromHTML(markup, pageURL string) (*Article, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, NewError(ErrorTypeParsing, "invalid HTML").WithCause(err)
	}

	var u *url.URL
	if pageURL != "" {
		if u, err = url.Parse(pageURL); err != nil {
			return nil, NewError(ErrorTypeValidation, "invalid page URL").WithCause(err)
		}
	}

	extracted, err := c.extractor.Extract(doc, u)
	if err != nil {
		return nil, wrapCoreError(err)
	}
	return &Article{
		URL:      pageURL,
		Title:    extracted.Title,
		Markdown: article.AssembleArticle(extracted),
	}, nil
}

// DiscussionFromJSON renders a thread payload fetched elsewhere. An
// unparseable payload renders as the empty string.
func (c *Client) DiscussionFromJSON(payload []byte) string {
	return c.pipeline.RenderDiscussionMarkdown(payload)
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.Converter == nil {
		return NewError(ErrorTypeConfiguration, "markdown converter is required")
	}
	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}
	if config.MaxConcurrency < 0 {
		return NewError(ErrorTypeConfiguration, "max concurrency cannot be negative")
	}
	return nil
}
