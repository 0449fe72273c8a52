package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bookcat.CategoryService = (*CategoryService)(nil)

// CategoryService implements bookcat.CategoryService using SQLite.
type CategoryService struct {
	db *DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *DB) *CategoryService {
	return &CategoryService{db: db}
}

// UpsertCategory creates or refreshes a category keyed by (navigation, slug).
func (s *CategoryService) UpsertCategory(ctx context.Context, c *bookcat.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.LastScrapedAt.IsZero() {
		c.LastScrapedAt = time.Now().UTC()
	}

	// product_count is omitted from the update clause: it is maintained by
	// product upserts, not by category scrapes.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, navigation_id, parent_id, title, slug, product_count, last_scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (navigation_id, slug) DO UPDATE SET
			title = excluded.title,
			parent_id = COALESCE(excluded.parent_id, parent_id),
			last_scraped_at = excluded.last_scraped_at
	`, uuid.New().String(), c.NavigationID, nullString(c.ParentID), c.Title, c.Slug,
		c.ProductCount, c.LastScrapedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	stored, err := s.findCategoryByNaturalKey(ctx, c.NavigationID, c.Slug)
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

// FindCategoryBySlug retrieves the first category with the given slug.
func (s *CategoryService) FindCategoryBySlug(ctx context.Context, slug string) (*bookcat.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, navigation_id, parent_id, title, slug, product_count, last_scraped_at
		FROM categories
		WHERE slug = ?
		ORDER BY rowid ASC
		LIMIT 1
	`, slug)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "category %q not found", slug)
	}
	return c, err
}

// FirstCategory returns an arbitrary existing category in insertion order.
// The product pass uses it as the fallback association target.
func (s *CategoryService) FirstCategory(ctx context.Context) (*bookcat.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, navigation_id, parent_id, title, slug, product_count, last_scraped_at
		FROM categories
		ORDER BY rowid ASC
		LIMIT 1
	`)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "no categories exist")
	}
	return c, err
}

// FindCategories retrieves categories matching the filter, ordered by title.
// Top-level results include their direct children.
func (s *CategoryService) FindCategories(ctx context.Context, filter bookcat.CategoryFilter) ([]*bookcat.Category, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, navigation_id, parent_id, title, slug, product_count, last_scraped_at FROM categories WHERE 1=1")

	if filter.NavigationID != nil {
		query.WriteString(" AND navigation_id = ?")
		args = append(args, *filter.NavigationID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}
	if filter.TopLevel {
		query.WriteString(" AND parent_id IS NULL")
	}

	query.WriteString(" ORDER BY title ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*bookcat.Category
	for rows.Next() {
		c, err := scanCategoryRows(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if filter.TopLevel {
		for _, c := range categories {
			children, err := s.FindCategories(ctx, bookcat.CategoryFilter{NavigationID: &c.NavigationID})
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				if child.ParentID != nil && *child.ParentID == c.ID {
					c.Children = append(c.Children, child)
				}
			}
		}
	}

	return categories, nil
}

// findCategoryByNaturalKey retrieves a category by its upsert key.
func (s *CategoryService) findCategoryByNaturalKey(ctx context.Context, navigationID, slug string) (*bookcat.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, navigation_id, parent_id, title, slug, product_count, last_scraped_at
		FROM categories
		WHERE navigation_id = ? AND slug = ?
	`, navigationID, slug)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "category %q not found", slug)
	}
	return c, err
}

// scanCategory scans a single category row.
func scanCategory(row *sql.Row) (*bookcat.Category, error) {
	var c bookcat.Category
	var parentID sql.NullString
	var lastScrapedAt string

	if err := row.Scan(&c.ID, &c.NavigationID, &parentID, &c.Title, &c.Slug, &c.ProductCount, &lastScrapedAt); err != nil {
		return nil, err
	}

	c.ParentID = fromNullString(parentID)
	var err error
	if c.LastScrapedAt, err = parseRFC3339(lastScrapedAt, "last_scraped_at"); err != nil {
		return nil, err
	}
	return &c, nil
}

// scanCategoryRows scans the current row of a category result set.
func scanCategoryRows(rows *sql.Rows) (*bookcat.Category, error) {
	var c bookcat.Category
	var parentID sql.NullString
	var lastScrapedAt string

	if err := rows.Scan(&c.ID, &c.NavigationID, &parentID, &c.Title, &c.Slug, &c.ProductCount, &lastScrapedAt); err != nil {
		return nil, err
	}

	c.ParentID = fromNullString(parentID)
	var err error
	if c.LastScrapedAt, err = parseRFC3339(lastScrapedAt, "last_scraped_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
