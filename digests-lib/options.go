// ABOUTME: Configuration options for the Digests reader library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package digests

import (
	"time"

	"digests-reader-api/core/interfaces"
	"digests-reader-api/infrastructure/cache/memory"
	"digests-reader-api/infrastructure/cache/sqlite"
	"digests-reader-api/infrastructure/extraction/readability"
	stdhttp "digests-reader-api/infrastructure/http/standard"
	"digests-reader-api/infrastructure/markdown"
	"digests-reader-api/infrastructure/page/collector"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets a custom cache implementation; nil disables caching
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithSQLiteCache caches rendered views in the SQLite file at path
func WithSQLiteCache(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewError(ErrorTypeConfiguration, "sqlite cache path is required")
		}
		cache, err := sqlite.NewSQLiteCache(path)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "open sqlite cache").WithCause(err)
		}
		c.Cache = cache
		c.closers = append(c.closers, cache.Close)
		return nil
	}
}

// WithHTTPClient sets the client used to fetch discussion payloads
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithPageSource sets how pages are loaded, e.g. a browser source
func WithPageSource(pages interfaces.PageSource) Option {
	return func(c *Config) error {
		c.Pages = pages
		return nil
	}
}

// WithExtractor replaces the readability fallback
func WithExtractor(extractor interfaces.ContentExtractor) Option {
	return func(c *Config) error {
		c.Extractor = extractor
		return nil
	}
}

// WithConverter replaces the HTML-to-Markdown converter
func WithConverter(converter interfaces.MarkdownConverter) Option {
	return func(c *Config) error {
		c.Converter = converter
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithLocation sets the time zone for discussion dates
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		if loc == nil {
			return NewError(ErrorTypeConfiguration, "location cannot be nil")
		}
		c.Location = loc
		return nil
	}
}

// WithCacheTTL sets how long rendered views are cached
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.CacheTTL = ttl
		return nil
	}
}

// WithMaxConcurrency bounds concurrent loads in batch calls
func WithMaxConcurrency(n int) Option {
	return func(c *Config) error {
		c.MaxConcurrency = n
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:      memory.NewMemoryCache(),
		HTTPClient: stdhttp.NewStandardHTTPClient(30 * time.Second),
		Pages: collector.NewSource(collector.Options{
			Timeout: 30 * time.Second,
		}, nil, nil),
		Extractor:      readability.NewExtractor(),
		Converter:      markdown.NewConverter(""),
		Logger:         interfaces.NopLogger{},
		Location:       time.UTC,
		CacheTTL:       time.Hour,
		MaxConcurrency: 5,
	}
}
