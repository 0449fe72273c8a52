package bookcat

import (
	"context"
	"time"
)

// Product represents a catalog product. SourceURL is globally unique and
// serves as the upsert key; SourceID is derived deterministically from it.
// Products associate with categories many-to-many.
type Product struct {
	ID              string     `json:"id"`
	SourceID        string     `json:"sourceId"`
	Title           string     `json:"title"`
	Author          *string    `json:"author"`
	Price           *float64   `json:"price"`
	ImageURL        *string    `json:"imageUrl"`
	SourceURL       string     `json:"sourceUrl"`
	ISBN            *string    `json:"isbn"`
	Publisher       *string    `json:"publisher"`
	PublicationDate *time.Time `json:"publicationDate"`
	LastScrapedAt   time.Time  `json:"lastScrapedAt"`

	// Detail and Reviews are populated by FindProductByID.
	Detail  *ProductDetail `json:"detail,omitempty"`
	Reviews []*Review      `json:"reviews,omitempty"`
}

// Validate returns an error if the product contains invalid fields.
func (p *Product) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "product title required")
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "product source URL required")
	}
	if p.SourceID == "" {
		return Errorf(EINVALID, "product source ID required")
	}
	return nil
}

// ProductUpdate represents bibliographic fields that can be updated on a
// product after the detail pass. Nil fields are left unchanged.
type ProductUpdate struct {
	ISBN            *string    `json:"isbn"`
	Publisher       *string    `json:"publisher"`
	PublicationDate *time.Time `json:"publicationDate"`
}

// ProductService represents a service for managing products.
type ProductService interface {
	// UpsertProduct creates the product or, when one with the same
	// SourceURL already exists, refreshes LastScrapedAt and any fields
	// provided by p. Fields omitted by p are never cleared. When
	// categoryID is non-empty the product is additionally connected to
	// that category; connections are additive and never replace the
	// existing set.
	UpsertProduct(ctx context.Context, p *Product, categoryID string) error

	// FindProductByID retrieves a product by ID, including its detail and
	// reviews. Returns ENOTFOUND if the product does not exist.
	FindProductByID(ctx context.Context, id string) (*Product, error)

	// FindProductBySourceURL retrieves a product by its source URL.
	// Returns ENOTFOUND if the product does not exist.
	FindProductBySourceURL(ctx context.Context, sourceURL string) (*Product, error)

	// FindProductsMissingDetail retrieves up to limit products that have
	// no associated detail record yet, oldest first.
	FindProductsMissingDetail(ctx context.Context, limit int) ([]*Product, error)

	// FindProductsByCategory retrieves products connected to the category
	// ordered by title, along with the total count of matching products.
	// The list and the count are read in a single transaction.
	FindProductsByCategory(ctx context.Context, categoryID string, offset, limit int) ([]*Product, int, error)

	// UpdateProduct applies a partial bibliographic update.
	// Returns ENOTFOUND if the product does not exist.
	UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (*Product, error)
}
