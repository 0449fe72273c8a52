package bookcat

import (
	"context"
	"time"
)

// Category represents a product category owned by exactly one navigation
// heading. Categories may form a tree via ParentID. A category is uniquely
// identified by (NavigationID, Slug).
type Category struct {
	ID            string    `json:"id"`
	NavigationID  string    `json:"navigationId"`
	ParentID      *string   `json:"parentId"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	ProductCount  int       `json:"productCount"`
	LastScrapedAt time.Time `json:"lastScrapedAt"`

	// Children holds direct subcategories. Populated by FindCategories
	// for top-level results.
	Children []*Category `json:"children,omitempty"`
}

// Validate returns an error if the category contains invalid fields.
func (c *Category) Validate() error {
	if c.NavigationID == "" {
		return Errorf(EINVALID, "category navigation ID required")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "category title required")
	}
	if c.Slug == "" {
		return Errorf(EINVALID, "category slug required")
	}
	return nil
}

// CategoryService represents a service for managing categories.
type CategoryService interface {
	// UpsertCategory creates the category or, when one with the same
	// (NavigationID, Slug) already exists, refreshes LastScrapedAt and any
	// fields provided by c. Fields omitted by c are never cleared.
	UpsertCategory(ctx context.Context, c *Category) error

	// FindCategoryBySlug retrieves the first category with the given slug
	// across all navigations. Returns ENOTFOUND if none exists.
	FindCategoryBySlug(ctx context.Context, slug string) (*Category, error)

	// FindCategories retrieves categories matching the filter, ordered by
	// title. Top-level results include their direct children.
	FindCategories(ctx context.Context, filter CategoryFilter) ([]*Category, error)

	// FirstCategory returns an arbitrary existing category. The product
	// pass uses it as the fallback association target when no precise
	// category mapping is derivable from the crawl context.
	// Returns ENOTFOUND when no categories exist.
	FirstCategory(ctx context.Context) (*Category, error)
}

// CategoryFilter represents a filter for FindCategories.
type CategoryFilter struct {
	NavigationID *string `json:"navigationId"`
	Slug         *string `json:"slug"`

	// TopLevel restricts results to categories without a parent.
	TopLevel bool `json:"topLevel"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
