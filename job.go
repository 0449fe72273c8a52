package bookcat

import (
	"context"
	"time"
)

// TargetType identifies which scrape pass a job runs.
type TargetType string

// Target types, one per scrape pass.
const (
	TargetNavigation    TargetType = "navigation"
	TargetCategory      TargetType = "category"
	TargetProduct       TargetType = "product"
	TargetProductDetail TargetType = "product-detail"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	switch t {
	case TargetNavigation, TargetCategory, TargetProduct, TargetProductDetail:
		return true
	}
	return false
}

// JobStatus represents the lifecycle state of a scrape job.
type JobStatus string

// Job statuses. Transitions are monotonic: queued → running →
// (completed | failed). Terminal states are immutable once set.
const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ScrapeJob records one orchestration invocation.
type ScrapeJob struct {
	ID         string     `json:"id"`
	TargetURL  string     `json:"targetUrl"`
	TargetType TargetType `json:"targetType"`
	Status     JobStatus  `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	ErrorLog   *string    `json:"errorLog"`
}

// Validate returns an error if the job contains invalid fields.
func (j *ScrapeJob) Validate() error {
	if j.TargetURL == "" {
		return Errorf(EINVALID, "job target URL required")
	}
	if !j.TargetType.Valid() {
		return Errorf(EINVALID, "unknown job target type %q", j.TargetType)
	}
	return nil
}

// JobService represents a service for tracking scrape jobs.
type JobService interface {
	// CreateJob creates a new job with status queued.
	CreateJob(ctx context.Context, job *ScrapeJob) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist.
	FindJobByID(ctx context.Context, id string) (*ScrapeJob, error)

	// MarkJobRunning transitions a queued job to running and records
	// StartedAt. Returns ECONFLICT if the job is not queued.
	MarkJobRunning(ctx context.Context, id string) error

	// MarkJobCompleted transitions a running job to completed and records
	// FinishedAt. Returns ECONFLICT if the job is already terminal.
	MarkJobCompleted(ctx context.Context, id string) error

	// MarkJobFailed transitions a non-terminal job to failed, recording
	// FinishedAt and the error message. Returns ECONFLICT if the job is
	// already terminal.
	MarkJobFailed(ctx context.Context, id string, message string) error

	// FindRecentJobs retrieves the n most recently created jobs, newest
	// first.
	FindRecentJobs(ctx context.Context, n int) ([]*ScrapeJob, error)

	// JobStats returns the number of jobs per status.
	JobStats(ctx context.Context) (map[JobStatus]int, error)
}
