package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the products command: a paginated listing of one
// category's products with the total match count.
func (c *ProductsCmd) Run(deps *Dependencies) error {
	category, err := deps.Categories.FindCategoryBySlug(deps.Ctx, c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	page := c.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * c.Limit

	products, total, err := deps.Products.FindProductsByCategory(deps.Ctx, category.ID, offset, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d products (page %d)\n", category.Title, total, page)
	for _, p := range products {
		line := fmt.Sprintf("%s  %s", p.ID, p.Title)
		if p.Author != nil {
			line += " by " + *p.Author
		}
		if p.Price != nil {
			line += fmt.Sprintf("  %.2f", *p.Price)
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
