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

func TestHistoryService(t *testing.T) {
	t.Parallel()

	t.Run("records views and lists newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		older := &bookcat.ViewHistory{
			SessionID: "sess-1",
			Path:      "/product/p1",
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		newer := &bookcat.ViewHistory{
			SessionID: "sess-1",
			Path:      "/product/p2",
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, svc.AddView(ctx, older))
		require.NoError(t, svc.AddView(ctx, newer))

		views, err := svc.RecentViews(ctx, 10)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "/product/p2", views[0].Path)
		assert.Equal(t, "/product/p1", views[1].Path)
	})

	t.Run("empty session is stored as anon", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		v := &bookcat.ViewHistory{Path: "/product/p1"}
		require.NoError(t, svc.AddView(ctx, v))
		assert.Equal(t, "anon", v.SessionID)

		views, err := svc.RecentViews(ctx, 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "anon", views[0].SessionID)
	})

	t.Run("view requires a path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)

		err := svc.AddView(context.Background(), &bookcat.ViewHistory{})
		require.Error(t, err)
		assert.Equal(t, bookcat.EINVALID, bookcat.ErrorCode(err))
	})
}
