package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/bookcat"
	main "github.com/fwojciec/bookcat/cmd/bookcat"
	"github.com/fwojciec/bookcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stats and recent jobs", func(t *testing.T) {
		t.Parallel()

		errLog := "fetch timeout"
		jobs := &mock.JobService{
			JobStatsFn: func(_ context.Context) (map[bookcat.JobStatus]int, error) {
				return map[bookcat.JobStatus]int{
					bookcat.JobCompleted: 3,
					bookcat.JobFailed:    1,
				}, nil
			},
			FindRecentJobsFn: func(_ context.Context, n int) ([]*bookcat.ScrapeJob, error) {
				require.Equal(t, 20, n)
				return []*bookcat.ScrapeJob{
					{ID: "job-2", TargetType: bookcat.TargetProduct, Status: bookcat.JobFailed, TargetURL: "https://books.example.com", ErrorLog: &errLog},
					{ID: "job-1", TargetType: bookcat.TargetNavigation, Status: bookcat.JobCompleted, TargetURL: "https://books.example.com"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Jobs:   jobs,
		}

		cmd := &main.JobsCmd{N: 20}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "queued=0 running=0 completed=3 failed=1")
		assert.Contains(t, output, "job-2")
		assert.Contains(t, output, "fetch timeout")
		assert.Contains(t, output, "job-1")
	})
}

func TestSweepCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("sweeps once and reports the count", func(t *testing.T) {
		t.Parallel()

		cache := &mock.CacheService{
			SweepCacheFn: func(_ context.Context) (int, error) {
				return 7, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Cache:  cache,
		}

		cmd := &main.SweepCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "deleted 7 expired cache entries")
	})
}
