package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the categories command. Top-level categories print with
// their direct children indented beneath them.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	filter := bookcat.CategoryFilter{TopLevel: true}
	if c.Nav != "" {
		nav, err := deps.Navigations.FindNavigationBySlug(deps.Ctx, c.Nav)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
			return err
		}
		filter.NavigationID = &nav.ID
	}

	categories, err := deps.Categories.FindCategories(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories yet. Run 'bookcat scrape category' first.")
		return nil
	}

	for _, cat := range categories {
		fmt.Fprintf(deps.Stdout, "%s  %-24s  %s (%d products)\n", cat.ID, cat.Slug, cat.Title, cat.ProductCount)
		for _, child := range cat.Children {
			fmt.Fprintf(deps.Stdout, "  %s  %-22s  %s (%d products)\n", child.ID, child.Slug, child.Title, child.ProductCount)
		}
	}

	return nil
}
