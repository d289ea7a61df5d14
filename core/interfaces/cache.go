// Package interfaces defines the contracts between the core and its collaborators.
// Every external concern (page loading, content extraction, Markdown conversion,
// network fetch, caching, logging) is injected through one of these interfaces.
package interfaces

import (
	"context"
	"time"
)

// Cache stores rendered Markdown views keyed by source URL.
//
// Example usage:
//
//	data, err := cache.Get(ctx, "article:https://example.com/post")
//	if err != nil {
//		// cache miss, render and store
//		_ = cache.Set(ctx, "article:https://example.com/post", payload, time.Hour)
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns an error on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
