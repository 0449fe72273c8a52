package bookcat

import (
	"context"
	"time"
)

// Navigation represents a top-level navigation heading scraped from the
// storefront. Slug is the stable identity key across scrape runs.
type Navigation struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	LastScrapedAt time.Time `json:"lastScrapedAt"`
}

// Validate returns an error if the navigation contains invalid fields.
func (n *Navigation) Validate() error {
	if n.Title == "" {
		return Errorf(EINVALID, "navigation title required")
	}
	if n.Slug == "" {
		return Errorf(EINVALID, "navigation slug required")
	}
	return nil
}

// NavigationService represents a service for managing navigation headings.
type NavigationService interface {
	// UpsertNavigation creates the navigation or, when one with the same
	// slug already exists, refreshes LastScrapedAt and any fields provided
	// by n. Fields omitted by n are never cleared.
	UpsertNavigation(ctx context.Context, n *Navigation) error

	// FindNavigationBySlug retrieves a navigation by slug.
	// Returns ENOTFOUND if the navigation does not exist.
	FindNavigationBySlug(ctx context.Context, slug string) (*Navigation, error)

	// FindNavigations retrieves navigations matching the filter,
	// ordered by title.
	FindNavigations(ctx context.Context, filter NavigationFilter) ([]*Navigation, error)
}

// NavigationFilter represents a filter for FindNavigations.
type NavigationFilter struct {
	Slug *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
