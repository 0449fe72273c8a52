package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bookcat.ProductDetailService = (*ProductDetailService)(nil)

// ProductDetailService implements bookcat.ProductDetailService using SQLite.
type ProductDetailService struct {
	db *DB
}

// NewProductDetailService creates a new ProductDetailService.
func NewProductDetailService(db *DB) *ProductDetailService {
	return &ProductDetailService{db: db}
}

// UpsertProductDetail creates or updates the one detail row per product.
func (s *ProductDetailService) UpsertProductDetail(ctx context.Context, d *bookcat.ProductDetail) error {
	if err := d.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO product_details (id, product_id, description, ratings_avg, reviews_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (product_id) DO UPDATE SET
			description = COALESCE(excluded.description, description),
			ratings_avg = excluded.ratings_avg,
			reviews_count = excluded.reviews_count
	`, uuid.New().String(), d.ProductID, nullString(d.Description), d.RatingsAvg, d.ReviewsCount)
	if err != nil {
		return err
	}

	stored, err := s.FindProductDetail(ctx, d.ProductID)
	if err != nil {
		return err
	}
	*d = *stored
	return nil
}

// FindProductDetail retrieves the detail for a product.
func (s *ProductDetailService) FindProductDetail(ctx context.Context, productID string) (*bookcat.ProductDetail, error) {
	var d bookcat.ProductDetail
	var description sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, product_id, description, ratings_avg, reviews_count
		FROM product_details
		WHERE product_id = ?
	`, productID).Scan(&d.ID, &d.ProductID, &description, &d.RatingsAvg, &d.ReviewsCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "product detail not found")
	}
	if err != nil {
		return nil, err
	}

	d.Description = fromNullString(description)
	return &d, nil
}

// AddReview appends a review to a product.
func (s *ProductDetailService) AddReview(ctx context.Context, r *bookcat.Review) error {
	if err := r.Validate(); err != nil {
		return err
	}

	r.ID = uuid.New().String()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, product_id, author, rating, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.ProductID, nullString(r.Author), nullFloat(r.Rating), r.Text,
		r.CreatedAt.UTC().Format(time.RFC3339))

	return err
}

// FindReviews retrieves all reviews for a product, newest first.
func (s *ProductDetailService) FindReviews(ctx context.Context, productID string) ([]*bookcat.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, author, rating, text, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*bookcat.Review
	for rows.Next() {
		var r bookcat.Review
		var author sql.NullString
		var rating sql.NullFloat64
		var createdAt string

		if err := rows.Scan(&r.ID, &r.ProductID, &author, &rating, &r.Text, &createdAt); err != nil {
			return nil, err
		}

		r.Author = fromNullString(author)
		r.Rating = fromNullFloat(rating)
		if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		reviews = append(reviews, &r)
	}

	return reviews, rows.Err()
}
