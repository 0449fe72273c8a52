package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// crawlOrder is the pass sequence for a full crawl. Navigation and
// categories come first so the product pass has a category to associate
// products with, and the detail pass has products to visit.
var crawlOrder = []bookcat.TargetType{
	bookcat.TargetNavigation,
	bookcat.TargetCategory,
	bookcat.TargetProduct,
	bookcat.TargetProductDetail,
}

// Run executes the crawl command: all four passes in order against the
// configured store.
func (c *CrawlCmd) Run(deps *Dependencies, globals *Globals) error {
	ids := make([]string, 0, len(crawlOrder))
	for _, targetType := range crawlOrder {
		job, err := deps.Runner.Enqueue(deps.Ctx, targetType, globals.BaseURL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
			return err
		}
		ids = append(ids, job.ID)
	}

	deps.Runner.Close()

	var failed bool
	for _, id := range ids {
		if err := reportJob(deps, id); err != nil {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("crawl finished with failures")
	}
	return nil
}
