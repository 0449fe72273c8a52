package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the scrape command: it enqueues a single pass, waits for
// the worker to drain, and reports the job's final status.
func (c *ScrapeCmd) Run(deps *Dependencies, globals *Globals) error {
	url := c.URL
	if url == "" {
		url = globals.BaseURL
	}

	job, err := deps.Runner.Enqueue(deps.Ctx, bookcat.TargetType(c.Type), url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "queued job %s (%s %s)\n", job.ID, job.TargetType, job.TargetURL)

	// Closing the runner drains the queue before returning.
	deps.Runner.Close()

	return reportJob(deps, job.ID)
}

// reportJob prints a job's final state and surfaces failure as an error.
func reportJob(deps *Dependencies, id string) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, id)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "job %s: %s\n", job.ID, job.Status)
	if job.ErrorLog != nil {
		fmt.Fprintf(deps.Stdout, "  %s\n", *job.ErrorLog)
	}
	if job.Status == bookcat.JobFailed {
		return fmt.Errorf("job %s failed", job.ID)
	}
	return nil
}
