package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestJob(t *testing.T, svc *sqlite.JobService) *bookcat.ScrapeJob {
	t.Helper()
	job := &bookcat.ScrapeJob{TargetType: bookcat.TargetNavigation, TargetURL: "https://books.example.com"}
	require.NoError(t, svc.CreateJob(context.Background(), job))
	return job
}

func TestJobService_CreateJob(t *testing.T) {
	t.Parallel()

	t.Run("creates job with status queued", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)

		job := createTestJob(t, svc)
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, bookcat.JobQueued, job.Status)
		assert.False(t, job.CreatedAt.IsZero())
		assert.Nil(t, job.StartedAt)
	})

	t.Run("returns error for unknown target type", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)

		err := svc.CreateJob(context.Background(), &bookcat.ScrapeJob{
			TargetType: "sitemap",
			TargetURL:  "https://books.example.com",
		})
		require.Error(t, err)
		assert.Equal(t, bookcat.EINVALID, bookcat.ErrorCode(err))
	})
}

func TestJobService_Transitions(t *testing.T) {
	t.Parallel()

	t.Run("queued to running to completed", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		job := createTestJob(t, svc)

		require.NoError(t, svc.MarkJobRunning(ctx, job.ID))
		require.NoError(t, svc.MarkJobCompleted(ctx, job.ID))

		stored, err := svc.FindJobByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, bookcat.JobCompleted, stored.Status)
		assert.NotNil(t, stored.StartedAt)
		assert.NotNil(t, stored.FinishedAt)
		assert.Nil(t, stored.ErrorLog)
	})

	t.Run("failed records the error message", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		job := createTestJob(t, svc)

		require.NoError(t, svc.MarkJobRunning(ctx, job.ID))
		require.NoError(t, svc.MarkJobFailed(ctx, job.ID, "fetch timeout"))

		stored, err := svc.FindJobByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, bookcat.JobFailed, stored.Status)
		require.NotNil(t, stored.ErrorLog)
		assert.Equal(t, "fetch timeout", *stored.ErrorLog)
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		job := createTestJob(t, svc)

		require.NoError(t, svc.MarkJobRunning(ctx, job.ID))
		require.NoError(t, svc.MarkJobCompleted(ctx, job.ID))

		err := svc.MarkJobFailed(ctx, job.ID, "too late")
		require.Error(t, err)
		assert.Equal(t, bookcat.ECONFLICT, bookcat.ErrorCode(err))

		err = svc.MarkJobRunning(ctx, job.ID)
		require.Error(t, err)
		assert.Equal(t, bookcat.ECONFLICT, bookcat.ErrorCode(err))

		stored, err := svc.FindJobByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, bookcat.JobCompleted, stored.Status)
		assert.Nil(t, stored.ErrorLog)
	})

	t.Run("running requires a queued job", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		job := createTestJob(t, svc)

		require.NoError(t, svc.MarkJobRunning(ctx, job.ID))

		err := svc.MarkJobRunning(ctx, job.ID)
		require.Error(t, err)
		assert.Equal(t, bookcat.ECONFLICT, bookcat.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown job", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)

		err := svc.MarkJobRunning(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, bookcat.ENOTFOUND, bookcat.ErrorCode(err))
	})
}

func TestJobService_FindRecentJobs(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()

		first := createTestJob(t, svc)
		second := createTestJob(t, svc)
		third := createTestJob(t, svc)

		jobs, err := svc.FindRecentJobs(ctx, 2)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, third.ID, jobs[0].ID)
		assert.Equal(t, second.ID, jobs[1].ID)
		_ = first
	})
}

func TestJobService_JobStats(t *testing.T) {
	t.Parallel()

	t.Run("counts jobs per status", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()

		createTestJob(t, svc)
		running := createTestJob(t, svc)
		require.NoError(t, svc.MarkJobRunning(ctx, running.ID))
		done := createTestJob(t, svc)
		require.NoError(t, svc.MarkJobRunning(ctx, done.ID))
		require.NoError(t, svc.MarkJobCompleted(ctx, done.ID))

		stats, err := svc.JobStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats[bookcat.JobQueued])
		assert.Equal(t, 1, stats[bookcat.JobRunning])
		assert.Equal(t, 1, stats[bookcat.JobCompleted])
		assert.Equal(t, 0, stats[bookcat.JobFailed])
	})
}
