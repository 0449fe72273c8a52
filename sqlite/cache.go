package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/bookcat"
)

// Compile-time interface verification.
var _ bookcat.CacheService = (*CacheService)(nil)

// CacheService implements bookcat.CacheService using SQLite.
type CacheService struct {
	db *DB

	// now is the time source for expiry checks.
	now func() time.Time
}

// NewCacheService creates a new CacheService.
func NewCacheService(db *DB) *CacheService {
	return &CacheService{db: db, now: time.Now}
}

// PutCacheEntry records or refreshes an entry expiring after ttl.
func (s *CacheService) PutCacheEntry(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return bookcat.Errorf(bookcat.EINVALID, "cache key required")
	}

	expiresAt := s.now().UTC().Add(ttl)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_cache (key, expires_at)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET expires_at = excluded.expires_at
	`, key, expiresAt.Format(time.RFC3339))

	return err
}

// CacheEntryFresh reports whether the key exists and has not expired.
func (s *CacheService) CacheEntryFresh(ctx context.Context, key string) (bool, error) {
	var expiresAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT expires_at FROM scrape_cache WHERE key = ?
	`, key).Scan(&expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	t, err := parseRFC3339(expiresAt, "expires_at")
	if err != nil {
		return false, err
	}
	return !t.Before(s.now().UTC()), nil
}

// SweepCache deletes all entries whose expiry is strictly before now and
// returns the number deleted. Safe to call repeatedly.
func (s *CacheService) SweepCache(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM scrape_cache WHERE expires_at < ?
	`, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
