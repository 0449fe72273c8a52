package scrape

import (
	"context"
	"log/slog"

	"github.com/fwojciec/bookcat"
)

// DefaultQueueSize bounds how many jobs may wait behind the running one.
const DefaultQueueSize = 16

// Runner executes scrape jobs asynchronously, one at a time. Enqueue
// creates a queued job and returns immediately; a single worker drains
// the queue in order, so jobs never run concurrently against the target
// site.
type Runner struct {
	orchestrator *Orchestrator
	jobs         bookcat.JobService
	logger       *slog.Logger

	queue chan *bookcat.ScrapeJob
	done  chan struct{}
}

// NewRunner returns a runner backed by the orchestrator. Start must be
// called before jobs execute.
func NewRunner(o *Orchestrator, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		orchestrator: o,
		jobs:         o.Jobs,
		logger:       logger,
		queue:        make(chan *bookcat.ScrapeJob, DefaultQueueSize),
		done:         make(chan struct{}),
	}
}

// Start launches the worker. It drains the queue until Close is called;
// ctx cancels the job currently running.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		for job := range r.queue {
			if err := r.orchestrator.Run(ctx, job); err != nil {
				r.logger.Error("scrape job failed", "job", job.ID, "type", job.TargetType, "err", err)
				continue
			}
			r.logger.Info("scrape job completed", "job", job.ID, "type", job.TargetType)
		}
	}()
}

// Enqueue creates a queued job for the target and hands it to the worker
// without waiting for execution. When the queue is full the job is marked
// failed instead of blocking the caller.
func (r *Runner) Enqueue(ctx context.Context, targetType bookcat.TargetType, targetURL string) (*bookcat.ScrapeJob, error) {
	if !targetType.Valid() {
		return nil, bookcat.Errorf(bookcat.EINVALID, "invalid scrape target type %q", targetType)
	}

	job := &bookcat.ScrapeJob{TargetType: targetType, TargetURL: targetURL}
	if err := r.jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	select {
	case r.queue <- job:
	default:
		if err := r.jobs.MarkJobFailed(ctx, job.ID, "job queue full"); err != nil {
			r.logger.Error("mark overflowed job failed", "job", job.ID, "err", err)
		}
	}

	return job, nil
}

// Close stops accepting jobs and waits for the worker to finish the ones
// already queued.
func (r *Runner) Close() {
	close(r.queue)
	<-r.done
}
