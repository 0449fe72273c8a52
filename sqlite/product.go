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
var _ bookcat.ProductService = (*ProductService)(nil)

// ProductService implements bookcat.ProductService using SQLite.
type ProductService struct {
	db *DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db}
}

const productColumns = `id, source_id, title, author, price, image_url, source_url, isbn, publisher, publication_date, last_scraped_at`

// UpsertProduct creates or refreshes a product keyed by source URL and,
// when categoryID is non-empty, additively connects it to that category.
func (s *ProductService) UpsertProduct(ctx context.Context, p *bookcat.Product, categoryID string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.LastScrapedAt.IsZero() {
		p.LastScrapedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// COALESCE keeps previously scraped values when a later partial record
	// omits them; a fresh record never clears an existing field.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_url) DO UPDATE SET
			title = excluded.title,
			author = COALESCE(excluded.author, author),
			price = COALESCE(excluded.price, price),
			image_url = COALESCE(excluded.image_url, image_url),
			isbn = COALESCE(excluded.isbn, isbn),
			publisher = COALESCE(excluded.publisher, publisher),
			publication_date = COALESCE(excluded.publication_date, publication_date),
			last_scraped_at = excluded.last_scraped_at
	`, uuid.New().String(), p.SourceID, p.Title, nullString(p.Author), nullFloat(p.Price),
		nullString(p.ImageURL), p.SourceURL, nullString(p.ISBN), nullString(p.Publisher),
		nullTime(p.PublicationDate), p.LastScrapedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	// Read back the canonical row; on conflict the existing ID is kept.
	row := tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE source_url = ?`, p.SourceURL)
	stored, err := scanProduct(row.Scan)
	if err != nil {
		return err
	}

	if categoryID != "" {
		// Connect is additive: existing category links are never replaced.
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO product_categories (product_id, category_id)
			VALUES (?, ?)
		`, stored.ID, categoryID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE categories
			SET product_count = (SELECT COUNT(*) FROM product_categories WHERE category_id = categories.id)
			WHERE id = ?
		`, categoryID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	*p = *stored
	return nil
}

// FindProductByID retrieves a product by ID, including detail and reviews.
func (s *ProductService) FindProductByID(ctx context.Context, id string) (*bookcat.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "product not found")
	}
	if err != nil {
		return nil, err
	}

	details := NewProductDetailService(s.db)
	detail, err := details.FindProductDetail(ctx, p.ID)
	if err != nil && bookcat.ErrorCode(err) != bookcat.ENOTFOUND {
		return nil, err
	}
	p.Detail = detail

	if p.Reviews, err = details.FindReviews(ctx, p.ID); err != nil {
		return nil, err
	}

	return p, nil
}

// FindProductBySourceURL retrieves a product by its source URL.
func (s *ProductService) FindProductBySourceURL(ctx context.Context, sourceURL string) (*bookcat.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE source_url = ?`, sourceURL)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "product %q not found", sourceURL)
	}
	return p, err
}

// FindProductsMissingDetail retrieves up to limit products without a detail
// record, oldest scrape first.
func (s *ProductService) FindProductsMissingDetail(ctx context.Context, limit int) ([]*bookcat.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.source_id, p.title, p.author, p.price, p.image_url, p.source_url, p.isbn, p.publisher, p.publication_date, p.last_scraped_at
		FROM products p
		LEFT JOIN product_details d ON d.product_id = p.id
		WHERE d.id IS NULL
		ORDER BY p.last_scraped_at ASC, p.rowid ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// FindProductsByCategory retrieves a page of products connected to the
// category along with the total count, both read in one transaction.
func (s *ProductService) FindProductsByCategory(ctx context.Context, categoryID string, offset, limit int) ([]*bookcat.Product, int, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM product_categories
		WHERE category_id = ?
	`, categoryID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT p.id, p.source_id, p.title, p.author, p.price, p.image_url, p.source_url, p.isbn, p.publisher, p.publication_date, p.last_scraped_at
		FROM products p
		JOIN product_categories pc ON pc.product_id = p.id
		WHERE pc.category_id = ?
		ORDER BY p.title ASC`
	args := []any{categoryID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	if offset > 0 {
		query += " OFFSET ?"
		args = append(args, offset)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// UpdateProduct applies a partial bibliographic update.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, upd bookcat.ProductUpdate) (*bookcat.Product, error) {
	product, err := s.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ISBN != nil {
		product.ISBN = upd.ISBN
	}
	if upd.Publisher != nil {
		product.Publisher = upd.Publisher
	}
	if upd.PublicationDate != nil {
		product.PublicationDate = upd.PublicationDate
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE products
		SET isbn = ?, publisher = ?, publication_date = ?
		WHERE id = ?
	`, nullString(product.ISBN), nullString(product.Publisher), nullTime(product.PublicationDate), id)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// scanProduct scans a product row via the given scan function.
func scanProduct(scan func(dest ...any) error) (*bookcat.Product, error) {
	var p bookcat.Product
	var author, imageURL, isbn, publisher, publicationDate sql.NullString
	var price sql.NullFloat64
	var lastScrapedAt string

	if err := scan(&p.ID, &p.SourceID, &p.Title, &author, &price, &imageURL, &p.SourceURL,
		&isbn, &publisher, &publicationDate, &lastScrapedAt); err != nil {
		return nil, err
	}

	p.Author = fromNullString(author)
	p.Price = fromNullFloat(price)
	p.ImageURL = fromNullString(imageURL)
	p.ISBN = fromNullString(isbn)
	p.Publisher = fromNullString(publisher)

	var err error
	if p.PublicationDate, err = fromNullRFC3339(publicationDate, "publication_date"); err != nil {
		return nil, err
	}
	if p.LastScrapedAt, err = parseRFC3339(lastScrapedAt, "last_scraped_at"); err != nil {
		return nil, err
	}

	return &p, nil
}

// collectProducts scans all rows of a product result set.
func collectProducts(rows *sql.Rows) ([]*bookcat.Product, error) {
	var products []*bookcat.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
