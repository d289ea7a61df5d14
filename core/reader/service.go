// ABOUTME: Service layer for rendering web pages as Markdown articles
// ABOUTME: Loads pages concurrently, runs the extraction pipeline and caches results

package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"digests-reader-api/core/article"
	"digests-reader-api/core/domain"
	coreerrors "digests-reader-api/core/errors"
	"digests-reader-api/core/interfaces"
	"digests-reader-api/core/workers"
)

const cacheKeyPrefix = "article:"

// Options tune the service
type Options struct {
	// CacheTTL is how long successful views are cached
	CacheTTL time.Duration

	// MaxConcurrency bounds the number of pages loaded at once
	MaxConcurrency int
}

// DefaultOptions returns the default service options
func DefaultOptions() Options {
	return Options{
		CacheTTL:       time.Hour,
		MaxConcurrency: 10,
	}
}

// Service renders pages as Markdown articles
type Service struct {
	cache     interfaces.Cache
	pages     interfaces.PageSource
	extractor *article.Extractor
	logger    interfaces.Logger
	opts      Options
}

// NewService creates a new article service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	defaults := DefaultOptions()
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaults.MaxConcurrency
	}
	if opts.CacheTTL < 0 {
		opts.CacheTTL = defaults.CacheTTL
	}

	logger := interfaces.LoggerOrNop(deps.Logger)
	return &Service{
		cache:     deps.Cache,
		pages:     deps.Pages,
		extractor: article.NewExtractor(deps.Extractor, deps.Converter, logger),
		logger:    logger,
		opts:      opts,
	}
}

// ExtractArticles renders every URL, keeping results in input order.
// Failures are reported per view; the batch itself never fails.
func (s *Service) ExtractArticles(ctx context.Context, urls []string) []domain.ArticleView {
	pool := workers.Pool[string, domain.ArticleView]{
		MaxWorkers: s.opts.MaxConcurrency,
		Process: func(ctx context.Context, url string) domain.ArticleView {
			view, err := s.ExtractArticle(ctx, url)
			if err != nil {
				return errorView(url, err)
			}
			return view
		},
		Cancelled: errorView,
	}
	return pool.Run(ctx, urls)
}

// ExtractArticle renders a single URL
func (s *Service) ExtractArticle(ctx context.Context, url string) (domain.ArticleView, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.ArticleView{}, &coreerrors.ValidationError{Field: "url", Message: "must not be empty"}
	}

	if view, ok := s.cached(ctx, url); ok {
		return view, nil
	}

	if s.pages == nil {
		return domain.ArticleView{}, fmt.Errorf("no page source configured")
	}

	page, err := s.pages.Load(ctx, url)
	if err != nil {
		s.logger.Error("Failed to load page", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return domain.ArticleView{}, err
	}

	extracted, err := s.extractor.Extract(page.Document, page.URL)
	if err != nil {
		s.logger.Warn("Failed to extract article", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return domain.ArticleView{}, err
	}

	view := domain.ArticleView{
		URL:      url,
		Title:    extracted.Title,
		Markdown: article.AssembleArticle(extracted),
		Status:   domain.StatusOK,
	}
	s.store(ctx, url, view)
	return view, nil
}

func (s *Service) cached(ctx context.Context, url string) (domain.ArticleView, bool) {
	if s.cache == nil {
		return domain.ArticleView{}, false
	}

	data, err := s.cache.Get(ctx, cacheKeyPrefix+url)
	if err != nil || data == nil {
		return domain.ArticleView{}, false
	}

	var view domain.ArticleView
	if err := json.Unmarshal(data, &view); err != nil {
		s.logger.Debug("Discarding unreadable cache entry", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return domain.ArticleView{}, false
	}
	return view, true
}

func (s *Service) store(ctx context.Context, url string, view domain.ArticleView) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKeyPrefix+url, data, s.opts.CacheTTL); err != nil {
		s.logger.Debug("Failed to cache article", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

func errorView(url string, err error) domain.ArticleView {
	return domain.ArticleView{
		URL:    url,
		Status: domain.StatusError,
		Error:  err.Error(),
	}
}
