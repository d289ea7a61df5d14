// ABOUTME: Builds the article and discussion services from configuration
// ABOUTME: Shared by the API server and the command line tool

// Package bootstrap turns a loaded Config into wired services: it chooses
// the cache backend, the page source and the robots.txt policy, and owns the
// resources that need closing on shutdown.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"digests-reader-api/core/interfaces"
	"digests-reader-api/core/reader"
	"digests-reader-api/core/reddit"
	"digests-reader-api/infrastructure/cache/memory"
	"digests-reader-api/infrastructure/cache/redis"
	"digests-reader-api/infrastructure/cache/sqlite"
	"digests-reader-api/infrastructure/extraction/readability"
	stdhttp "digests-reader-api/infrastructure/http/standard"
	"digests-reader-api/infrastructure/markdown"
	"digests-reader-api/infrastructure/page/browser"
	"digests-reader-api/infrastructure/page/collector"
	"digests-reader-api/infrastructure/robots"
	"digests-reader-api/pkg/config"
	"digests-reader-api/pkg/featureflags"
)

// Options adjusts wiring that is not part of the configuration file
type Options struct {
	// Transport wraps outgoing discussion fetches, e.g. for request logging
	Transport http.RoundTripper
}

// App holds the wired services
type App struct {
	Articles    *reader.Service
	Discussions *reddit.Service

	// Cache is nil when caching is disabled
	Cache interfaces.Cache

	// PageSource names the page source in use
	PageSource string

	closers []io.Closer
}

// Build wires the services described by cfg
func Build(cfg *config.Config, flags featureflags.Manager, logger interfaces.Logger, opts Options) (*App, error) {
	logger = interfaces.LoggerOrNop(logger)
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}

	loc, err := cfg.Render.Location()
	if err != nil {
		return nil, fmt.Errorf("render time zone: %w", err)
	}

	app := &App{}

	if isEnabled(flags, featureflags.CacheEnabled) {
		cache, closer, err := newCache(cfg.Cache, logger)
		if err != nil {
			return nil, err
		}
		app.Cache = cache
		if closer != nil {
			app.closers = append(app.closers, closer)
		}
	} else {
		logger.Info("Caching disabled by feature flag", nil)
	}

	var guard *robots.Guard
	if cfg.Fetch.RespectRobots {
		guard = robots.NewGuard(&http.Client{Timeout: cfg.Fetch.Timeout()}, cfg.Fetch.UserAgent, logger)
	}

	var pages interfaces.PageSource
	if cfg.Fetch.PageSource == config.PageSourceBrowser || isEnabled(flags, featureflags.BrowserRendering) {
		src := browser.NewSource(browser.Options{
			Bin:       cfg.Fetch.BrowserBin,
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout(),
			NoSandbox: cfg.Fetch.BrowserBin != "",
		}, guard, logger)
		pages = src
		app.PageSource = config.PageSourceBrowser
		app.closers = append(app.closers, src)
	} else {
		pages = collector.NewSource(collector.Options{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout(),
		}, guard, logger)
		app.PageSource = config.PageSourceHTTP
	}

	httpClient := stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:   cfg.Fetch.Timeout(),
		UserAgent: cfg.Fetch.UserAgent,
		Transport: opts.Transport,
	})

	deps := interfaces.Dependencies{
		Cache:      app.Cache,
		HTTPClient: httpClient,
		Pages:      pages,
		Extractor:  readability.NewExtractor(),
		Converter:  markdown.NewConverter(""),
		Logger:     logger,
	}

	app.Articles = reader.NewService(deps, reader.Options{
		CacheTTL:       cfg.Cache.TTL(),
		MaxConcurrency: cfg.Server.MaxConcurrency,
	})
	app.Discussions = reddit.NewService(deps, reddit.Options{
		CacheTTL:       cfg.Cache.TTL(),
		MaxConcurrency: cfg.Server.MaxConcurrency,
		Location:       loc,
	})

	logger.Info("Services wired", map[string]interface{}{
		"cache_type":     cacheName(cfg, app.Cache),
		"page_source":    app.PageSource,
		"respect_robots": cfg.Fetch.RespectRobots,
		"time_zone":      loc.String(),
	})
	return app, nil
}

// Close releases the cache and browser
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newCache opens the configured backend. A Redis connection failure falls
// back to the in-memory cache; a SQLite failure is fatal.
func newCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, io.Closer, error) {
	switch cfg.Type {
	case config.CacheTypeRedis:
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"address": cfg.Redis.Address,
				"error":   err.Error(),
			})
			return memory.NewMemoryCache(), nil, nil
		}
		return redisCache, redisCache, nil
	case config.CacheTypeSQLite:
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return sqliteCache, sqliteCache, nil
	default:
		return memory.NewMemoryCache(), nil, nil
	}
}

func cacheName(cfg *config.Config, cache interfaces.Cache) string {
	switch cache.(type) {
	case nil:
		return "disabled"
	case *memory.MemoryCache:
		return config.CacheTypeMemory
	default:
		return cfg.Cache.Type
	}
}

func isEnabled(flags featureflags.Manager, flag featureflags.FeatureFlag) bool {
	return flags.IsEnabled(context.Background(), flag)
}
