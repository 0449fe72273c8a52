package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/mock"
	bookslog "github.com/fwojciec/bookcat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingJobService(t *testing.T) {
	t.Parallel()

	t.Run("logs job creation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.JobService{
			CreateJobFn: func(ctx context.Context, job *bookcat.ScrapeJob) error {
				job.ID = "job-1"
				return nil
			},
		}

		svc := bookslog.NewLoggingJobService(inner, logger)
		job := &bookcat.ScrapeJob{TargetType: bookcat.TargetNavigation, TargetURL: "https://books.example.com"}
		require.NoError(t, svc.CreateJob(context.Background(), job))

		output := buf.String()
		assert.Contains(t, output, "create job")
		assert.Contains(t, output, "job=job-1")
		assert.Contains(t, output, "type=navigation")
	})

	t.Run("logs failure transitions with the reason", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.JobService{
			MarkJobFailedFn: func(ctx context.Context, id, message string) error {
				return nil
			},
		}

		svc := bookslog.NewLoggingJobService(inner, logger)
		require.NoError(t, svc.MarkJobFailed(context.Background(), "job-1", "fetch timeout"))

		output := buf.String()
		assert.Contains(t, output, "job failed")
		assert.Contains(t, output, "reason=\"fetch timeout\"")
	})
}
