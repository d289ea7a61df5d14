// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, page loading, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache built on go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: SQLite-backed cache with periodic expiry cleanup
// - page/collector: Static page source built on colly
// - page/browser: Headless Chrome page source built on rod
// - robots: robots.txt guard shared by both page sources
// - extraction/readability: Readability fallback extractor
// - markdown: HTML-to-Markdown converter
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger with optional file rotation
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	    DB:      0,
//	})
//
// # Page Sources
//
//	source := collector.NewSource(collector.Options{Timeout: 30 * time.Second}, nil, logger)
//	page, err := source.Load(ctx, "https://example.com/post")
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.New(logrus.Options{Level: "info"})
//	logger.Info("Rendering article", map[string]interface{}{
//	    "url": "https://example.com/post",
//	})
package infrastructure
