package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookcat"
)

// Ensure LoggingJobService implements bookcat.JobService.
var _ bookcat.JobService = (*LoggingJobService)(nil)

// LoggingJobService wraps a JobService with transition logging.
type LoggingJobService struct {
	next   bookcat.JobService
	logger *slog.Logger
}

// NewLoggingJobService creates a new LoggingJobService.
func NewLoggingJobService(next bookcat.JobService, logger *slog.Logger) *LoggingJobService {
	return &LoggingJobService{next: next, logger: logger}
}

// CreateJob logs the new job and delegates to the wrapped service.
func (s *LoggingJobService) CreateJob(ctx context.Context, job *bookcat.ScrapeJob) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create job",
			"job", job.ID,
			"type", job.TargetType,
			"url", job.TargetURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateJob(ctx, job)
}

// FindJobByID delegates to the wrapped service.
func (s *LoggingJobService) FindJobByID(ctx context.Context, id string) (*bookcat.ScrapeJob, error) {
	return s.next.FindJobByID(ctx, id)
}

// MarkJobRunning logs the transition and delegates to the wrapped service.
func (s *LoggingJobService) MarkJobRunning(ctx context.Context, id string) (err error) {
	defer func() {
		s.logger.Info("job running", "job", id, "err", err)
	}()
	return s.next.MarkJobRunning(ctx, id)
}

// MarkJobCompleted logs the transition and delegates to the wrapped service.
func (s *LoggingJobService) MarkJobCompleted(ctx context.Context, id string) (err error) {
	defer func() {
		s.logger.Info("job completed", "job", id, "err", err)
	}()
	return s.next.MarkJobCompleted(ctx, id)
}

// MarkJobFailed logs the transition and delegates to the wrapped service.
func (s *LoggingJobService) MarkJobFailed(ctx context.Context, id string, message string) (err error) {
	defer func() {
		s.logger.Error("job failed", "job", id, "reason", message, "err", err)
	}()
	return s.next.MarkJobFailed(ctx, id, message)
}

// FindRecentJobs delegates to the wrapped service.
func (s *LoggingJobService) FindRecentJobs(ctx context.Context, n int) ([]*bookcat.ScrapeJob, error) {
	return s.next.FindRecentJobs(ctx, n)
}

// JobStats delegates to the wrapped service.
func (s *LoggingJobService) JobStats(ctx context.Context) (map[bookcat.JobStatus]int, error) {
	return s.next.JobStats(ctx)
}
