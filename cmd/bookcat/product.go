package main

import (
	"fmt"

	"github.com/fwojciec/bookcat"
)

// Run executes the product command. Viewing a product records a view in
// the browsing history.
func (c *ProductCmd) Run(deps *Dependencies) error {
	p, err := deps.Products.FindProductByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookcat.ErrorMessage(err))
		return err
	}

	view := &bookcat.ViewHistory{SessionID: c.Session, Path: "/product/" + p.ID}
	if err := deps.History.AddView(deps.Ctx, view); err != nil {
		deps.Logger.Warn("record view", "product", p.ID, "err", err)
	}

	fmt.Fprintf(deps.Stdout, "%s\n", p.Title)
	if p.Author != nil {
		fmt.Fprintf(deps.Stdout, "by %s\n", *p.Author)
	}
	if p.Price != nil {
		fmt.Fprintf(deps.Stdout, "price: %.2f\n", *p.Price)
	}
	if p.ISBN != nil {
		fmt.Fprintf(deps.Stdout, "isbn: %s\n", *p.ISBN)
	}
	if p.Publisher != nil {
		fmt.Fprintf(deps.Stdout, "publisher: %s\n", *p.Publisher)
	}
	if p.PublicationDate != nil {
		fmt.Fprintf(deps.Stdout, "published: %s\n", p.PublicationDate.Format("2006-01-02"))
	}
	fmt.Fprintf(deps.Stdout, "source: %s\n", p.SourceURL)

	if p.Detail != nil {
		if p.Detail.Description != nil {
			fmt.Fprintf(deps.Stdout, "\n%s\n", *p.Detail.Description)
		}
		fmt.Fprintf(deps.Stdout, "\nrating %.1f (%d reviews)\n", p.Detail.RatingsAvg, p.Detail.ReviewsCount)
	}

	for _, r := range p.Reviews {
		author := "anonymous"
		if r.Author != nil {
			author = *r.Author
		}
		if r.Rating != nil {
			fmt.Fprintf(deps.Stdout, "- %s (%.1f): %s\n", author, *r.Rating, r.Text)
		} else {
			fmt.Fprintf(deps.Stdout, "- %s: %s\n", author, r.Text)
		}
	}

	return nil
}
