package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
	"github.com/robfig/cron/v3"
)

// Run executes the sweep command. Without --schedule it sweeps once;
// with a cron expression it keeps sweeping on that schedule until the
// context is cancelled.
func (c *SweepCmd) Run(deps *Dependencies) error {
	if c.Schedule == "" {
		return c.sweepOnce(deps)
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(c.Schedule, func() {
		if err := c.sweepOnce(deps); err != nil {
			deps.Logger.Error("scheduled sweep", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.Schedule, err)
	}

	scheduler.Start()
	fmt.Fprintf(deps.Stdout, "sweeping on schedule %q; Ctrl-C to stop\n", c.Schedule)

	<-deps.Ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}

func (c *SweepCmd) sweepOnce(deps *Dependencies) error {
	n, err := deps.Cache.SweepCache(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "deleted %d expired cache entries\n", n)
	return nil
}
