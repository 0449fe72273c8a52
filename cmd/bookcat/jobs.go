package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Jobs.JobStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "queued=%d running=%d completed=%d failed=%d\n",
		stats[bookcat.JobQueued],
		stats[bookcat.JobRunning],
		stats[bookcat.JobCompleted],
		stats[bookcat.JobFailed],
	)

	jobs, err := deps.Jobs.FindRecentJobs(deps.Ctx, c.N)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	for _, job := range jobs {
		line := fmt.Sprintf("%s  %-14s  %-9s  %s", job.ID, job.TargetType, job.Status, job.TargetURL)
		if job.ErrorLog != nil {
			line += "  " + *job.ErrorLog
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
