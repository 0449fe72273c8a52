package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bookcat.JobService = (*JobService)(nil)

// JobService implements bookcat.JobService using SQLite. Status
// transitions are guarded in SQL so that terminal states stay immutable
// even under concurrent callers.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob creates a new job with status queued.
func (s *JobService) CreateJob(ctx context.Context, job *bookcat.ScrapeJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.Status = bookcat.JobQueued
	job.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_jobs (id, target_url, target_type, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, job.ID, job.TargetURL, string(job.TargetType), string(job.Status),
		job.CreatedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*bookcat.ScrapeJob, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, target_url, target_type, status, created_at, started_at, finished_at, error_log
		FROM scrape_jobs
		WHERE id = ?
	`, id)

	job, err := scanJob(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "job not found")
	}
	return job, err
}

// MarkJobRunning transitions a queued job to running.
func (s *JobService) MarkJobRunning(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		UPDATE scrape_jobs
		SET status = ?, started_at = ?
		WHERE id = ? AND status = ?
	`, string(bookcat.JobRunning), now, id, string(bookcat.JobQueued))
	if err != nil {
		return err
	}
	return s.checkTransition(ctx, res, id, bookcat.JobRunning)
}

// MarkJobCompleted transitions a non-terminal job to completed.
func (s *JobService) MarkJobCompleted(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		UPDATE scrape_jobs
		SET status = ?, finished_at = ?
		WHERE id = ? AND status IN (?, ?)
	`, string(bookcat.JobCompleted), now, id,
		string(bookcat.JobQueued), string(bookcat.JobRunning))
	if err != nil {
		return err
	}
	return s.checkTransition(ctx, res, id, bookcat.JobCompleted)
}

// MarkJobFailed transitions a non-terminal job to failed with an error message.
func (s *JobService) MarkJobFailed(ctx context.Context, id string, message string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		UPDATE scrape_jobs
		SET status = ?, finished_at = ?, error_log = ?
		WHERE id = ? AND status IN (?, ?)
	`, string(bookcat.JobFailed), now, message, id,
		string(bookcat.JobQueued), string(bookcat.JobRunning))
	if err != nil {
		return err
	}
	return s.checkTransition(ctx, res, id, bookcat.JobFailed)
}

// checkTransition distinguishes a missing job from an illegal transition
// when a guarded status update matched no rows.
func (s *JobService) checkTransition(ctx context.Context, res sql.Result, id string, to bookcat.JobStatus) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	job, err := s.FindJobByID(ctx, id)
	if err != nil {
		return err
	}
	return bookcat.Errorf(bookcat.ECONFLICT, "cannot transition job from %s to %s", job.Status, to)
}

// FindRecentJobs retrieves the n most recently created jobs, newest first.
func (s *JobService) FindRecentJobs(ctx context.Context, n int) ([]*bookcat.ScrapeJob, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target_url, target_type, status, created_at, started_at, finished_at, error_log
		FROM scrape_jobs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*bookcat.ScrapeJob
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// JobStats returns the number of jobs per status.
func (s *JobService) JobStats(ctx context.Context) (map[bookcat.JobStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM scrape_jobs
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[bookcat.JobStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[bookcat.JobStatus(status)] = count
	}

	return stats, rows.Err()
}

// scanJob scans a job row via the given scan function.
func scanJob(scan func(dest ...any) error) (*bookcat.ScrapeJob, error) {
	var job bookcat.ScrapeJob
	var targetType, status, createdAt string
	var startedAt, finishedAt, errorLog sql.NullString

	if err := scan(&job.ID, &job.TargetURL, &targetType, &status, &createdAt,
		&startedAt, &finishedAt, &errorLog); err != nil {
		return nil, err
	}

	job.TargetType = bookcat.TargetType(targetType)
	job.Status = bookcat.JobStatus(status)
	job.ErrorLog = fromNullString(errorLog)

	var err error
	if job.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if job.StartedAt, err = fromNullRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if job.FinishedAt, err = fromNullRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &job, nil
}
