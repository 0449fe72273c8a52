package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService(t *testing.T) {
	t.Parallel()

	t.Run("entry is fresh within its TTL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCacheService(db)
		ctx := context.Background()

		require.NoError(t, svc.PutCacheEntry(ctx, "k1", time.Hour))

		fresh, err := svc.CacheEntryFresh(ctx, "k1")
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("expired entry is not fresh", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCacheService(db)
		ctx := context.Background()

		require.NoError(t, svc.PutCacheEntry(ctx, "k1", -time.Hour))

		fresh, err := svc.CacheEntryFresh(ctx, "k1")
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("unknown key is not fresh", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCacheService(db)

		fresh, err := svc.CacheEntryFresh(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCacheService(db)

		err := svc.PutCacheEntry(context.Background(), "", time.Hour)
		require.Error(t, err)
		assert.Equal(t, bookcat.EINVALID, bookcat.ErrorCode(err))
	})

	t.Run("sweep deletes only expired entries and is idempotent", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCacheService(db)
		ctx := context.Background()

		require.NoError(t, svc.PutCacheEntry(ctx, "expired-1", -time.Hour))
		require.NoError(t, svc.PutCacheEntry(ctx, "expired-2", -time.Minute))
		require.NoError(t, svc.PutCacheEntry(ctx, "live", time.Hour))

		n, err := svc.SweepCache(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		fresh, err := svc.CacheEntryFresh(ctx, "live")
		require.NoError(t, err)
		assert.True(t, fresh)

		n, err = svc.SweepCache(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}
