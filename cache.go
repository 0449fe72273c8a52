package bookcat

import (
	"context"
	"time"
)

// CacheEntry marks a scrape target as recently fetched. Entries carry a
// TTL and are removed by the sweep; they never gate a fetch, so losing
// them is harmless.
type CacheEntry struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CacheService represents a service for the scrape freshness cache.
type CacheService interface {
	// PutCacheEntry records (or refreshes) an entry expiring after ttl.
	PutCacheEntry(ctx context.Context, key string, ttl time.Duration) error

	// CacheEntryFresh reports whether the key exists and has not expired.
	CacheEntryFresh(ctx context.Context, key string) (bool, error)

	// SweepCache deletes all entries whose expiry is strictly before the
	// current time and returns the number deleted. Idempotent; running it
	// twice in succession deletes nothing the second time.
	SweepCache(ctx context.Context) (int, error)
}
