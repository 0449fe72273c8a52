package bookcat

import (
	"context"
	"time"
)

// ProductDetail holds descriptive fields for a single product. At most one
// detail exists per product (ProductID is the upsert key).
type ProductDetail struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	Description  *string `json:"description"`
	RatingsAvg   float64 `json:"ratingsAvg"`
	ReviewsCount int     `json:"reviewsCount"`
}

// Validate returns an error if the detail contains invalid fields.
func (d *ProductDetail) Validate() error {
	if d.ProductID == "" {
		return Errorf(EINVALID, "product detail product ID required")
	}
	return nil
}

// Review represents a single product review. Reviews are append-only;
// a product may have many.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Author    *string   `json:"author"`
	Rating    *float64  `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the review contains invalid fields.
func (r *Review) Validate() error {
	if r.ProductID == "" {
		return Errorf(EINVALID, "review product ID required")
	}
	if r.Text == "" {
		return Errorf(EINVALID, "review text required")
	}
	return nil
}

// ProductDetailService represents a service for managing product details
// and reviews.
type ProductDetailService interface {
	// UpsertProductDetail creates the detail or, when one for the same
	// product already exists, updates the provided fields in place.
	UpsertProductDetail(ctx context.Context, d *ProductDetail) error

	// FindProductDetail retrieves the detail for a product.
	// Returns ENOTFOUND if no detail exists.
	FindProductDetail(ctx context.Context, productID string) (*ProductDetail, error)

	// AddReview appends a review to a product.
	AddReview(ctx context.Context, r *Review) error

	// FindReviews retrieves all reviews for a product, newest first.
	FindReviews(ctx context.Context, productID string) ([]*Review, error)
}
