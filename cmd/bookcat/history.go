package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	views, err := deps.History.RecentViews(deps.Ctx, c.N)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(deps.Stdout, "No views recorded yet.")
		return nil
	}

	for _, v := range views {
		fmt.Fprintf(deps.Stdout, "%s  %-12s  %s\n", v.CreatedAt.Format("2006-01-02 15:04:05"), v.SessionID, v.Path)
	}

	return nil
}
