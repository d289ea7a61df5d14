// ABOUTME: Service layer for rendering Reddit threads as Markdown
// ABOUTME: Fetches thread JSON through the HTTP client and runs the discussion pipeline

package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"digests-reader-api/core/discussion"
	"digests-reader-api/core/domain"
	coreerrors "digests-reader-api/core/errors"
	"digests-reader-api/core/interfaces"
	"digests-reader-api/core/workers"
)

const (
	cacheKeyPrefix = "discussion:"
	apiName        = "reddit"

	// maxPayloadBytes caps the thread JSON read from the network
	maxPayloadBytes = 16 << 20
)

// Options tune the service
type Options struct {
	CacheTTL       time.Duration
	MaxConcurrency int

	// Location is the time zone used for attribution dates
	Location *time.Location
}

// DefaultOptions returns the default service options
func DefaultOptions() Options {
	return Options{
		CacheTTL:       15 * time.Minute,
		MaxConcurrency: 5,
		Location:       time.UTC,
	}
}

// Service renders discussion threads as Markdown
type Service struct {
	cache    interfaces.Cache
	client   interfaces.HTTPClient
	pipeline *discussion.Pipeline
	logger   interfaces.Logger
	opts     Options
}

// NewService creates a new discussion service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	defaults := DefaultOptions()
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaults.MaxConcurrency
	}
	if opts.CacheTTL < 0 {
		opts.CacheTTL = defaults.CacheTTL
	}
	if opts.Location == nil {
		opts.Location = defaults.Location
	}

	logger := interfaces.LoggerOrNop(deps.Logger)
	return &Service{
		cache:    deps.Cache,
		client:   deps.HTTPClient,
		pipeline: discussion.NewPipeline(opts.Location, logger),
		logger:   logger,
		opts:     opts,
	}
}

// FetchDiscussions renders every thread URL, keeping results in input order
func (s *Service) FetchDiscussions(ctx context.Context, urls []string) []domain.DiscussionView {
	pool := workers.Pool[string, domain.DiscussionView]{
		MaxWorkers: s.opts.MaxConcurrency,
		Process: func(ctx context.Context, url string) domain.DiscussionView {
			view, err := s.FetchDiscussion(ctx, url)
			if err != nil {
				return errorView(url, err)
			}
			return view
		},
		Cancelled: errorView,
	}
	return pool.Run(ctx, urls)
}

// FetchDiscussion renders a single thread. A payload that cannot be parsed
// yields a view with status "empty" rather than an error.
func (s *Service) FetchDiscussion(ctx context.Context, threadURL string) (domain.DiscussionView, error) {
	jsonURL, err := JSONURL(threadURL)
	if err != nil {
		return domain.DiscussionView{}, err
	}

	if view, ok := s.cached(ctx, jsonURL); ok {
		view.URL = threadURL
		return view, nil
	}

	payload, err := s.fetch(ctx, jsonURL)
	if err != nil {
		s.logger.Error("Failed to fetch discussion", map[string]interface{}{
			"url":   jsonURL,
			"error": err.Error(),
		})
		return domain.DiscussionView{}, err
	}

	view := domain.DiscussionView{
		URL:      threadURL,
		Markdown: s.pipeline.RenderDiscussionMarkdown(payload),
		Status:   domain.StatusOK,
	}
	if view.Markdown == "" {
		view.Status = domain.StatusEmpty
		return view, nil
	}

	s.store(ctx, jsonURL, view)
	return view, nil
}

func (s *Service) fetch(ctx context.Context, jsonURL string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("no http client configured")
	}

	resp, err := s.client.Get(ctx, jsonURL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "fetch discussion")
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.ExternalAPIError{
			API:        apiName,
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
		}
	}

	payload, err := io.ReadAll(io.LimitReader(body, maxPayloadBytes))
	if err != nil {
		return nil, coreerrors.WrapError(err, "read discussion payload")
	}
	return payload, nil
}

func (s *Service) cached(ctx context.Context, jsonURL string) (domain.DiscussionView, bool) {
	if s.cache == nil {
		return domain.DiscussionView{}, false
	}

	data, err := s.cache.Get(ctx, cacheKeyPrefix+jsonURL)
	if err != nil || data == nil {
		return domain.DiscussionView{}, false
	}

	var view domain.DiscussionView
	if err := json.Unmarshal(data, &view); err != nil {
		return domain.DiscussionView{}, false
	}
	return view, true
}

func (s *Service) store(ctx context.Context, jsonURL string, view domain.DiscussionView) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKeyPrefix+jsonURL, data, s.opts.CacheTTL); err != nil {
		s.logger.Debug("Failed to cache discussion", map[string]interface{}{
			"url":   jsonURL,
			"error": err.Error(),
		})
	}
}

func errorView(url string, err error) domain.DiscussionView {
	return domain.DiscussionView{
		URL:    url,
		Status: domain.StatusError,
		Error:  err.Error(),
	}
}
