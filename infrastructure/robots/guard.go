// ABOUTME: robots.txt policy checks for page sources
// ABOUTME: Fetches and caches one robots.txt group per host using temoto/robotstxt

package robots

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"digests-reader-api/core/interfaces"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// DefaultTTL is how long a host's robots.txt is reused
const DefaultTTL = time.Hour

// FailureTTL is how long an unavailable robots.txt allows everything before
// it is fetched again
const FailureTTL = time.Minute

// Guard answers whether a user agent may fetch a URL
type Guard struct {
	client    *http.Client
	userAgent string
	groups    *gocache.Cache
	logger    interfaces.Logger
}

// NewGuard creates a Guard for userAgent
func NewGuard(client *http.Client, userAgent string, logger interfaces.Logger) *Guard {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Guard{
		client:    client,
		userAgent: userAgent,
		groups:    gocache.New(DefaultTTL, 2*DefaultTTL),
		logger:    interfaces.LoggerOrNop(logger),
	}
}

// Check returns ErrDisallowed when robots.txt forbids pageURL. A robots.txt
// that cannot be fetched allows everything.
func (g *Guard) Check(ctx context.Context, pageURL *url.URL) error {
	group := g.group(ctx, pageURL)
	if group == nil {
		return nil
	}

	path := pageURL.EscapedPath()
	if pageURL.RawQuery != "" {
		path += "?" + pageURL.RawQuery
	}
	if path == "" {
		path = "/"
	}
	if !group.Test(path) {
		return fmt.Errorf("%s: %w", pageURL, ErrDisallowed)
	}
	return nil
}

func (g *Guard) group(ctx context.Context, pageURL *url.URL) *robotstxt.Group {
	origin := pageURL.Scheme + "://" + pageURL.Host
	if cached, ok := g.groups.Get(origin); ok {
		group, _ := cached.(*robotstxt.Group)
		return group
	}

	group, err := g.fetch(ctx, origin)
	switch {
	case err == nil:
		g.groups.SetDefault(origin, group)
	case ctx.Err() != nil:
		// the caller gave up; the next request asks again
	default:
		g.groups.Set(origin, group, FailureTTL)
	}
	return group
}

func (g *Guard) fetch(ctx context.Context, origin string) (*robotstxt.Group, error) {
	robotsURL := origin + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("robots.txt unavailable, allowing all", map[string]interface{}{
			"url":   robotsURL,
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		g.logger.Debug("robots.txt unparseable, allowing all", map[string]interface{}{
			"url":   robotsURL,
			"error": err.Error(),
		})
		return nil, err
	}
	return data.FindGroup(g.userAgent), nil
}
