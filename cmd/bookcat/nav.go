package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the nav command.
func (c *NavCmd) Run(deps *Dependencies) error {
	navs, err := deps.Navigations.FindNavigations(deps.Ctx, bookcat.NavigationFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	if len(navs) == 0 {
		fmt.Fprintln(deps.Stdout, "No navigation headings yet. Run 'bookcat scrape navigation' first.")
		return nil
	}

	for _, n := range navs {
		fmt.Fprintf(deps.Stdout, "%s  %-20s  %s\n", n.ID, n.Slug, n.Title)
	}

	return nil
}
