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
var _ bookcat.NavigationService = (*NavigationService)(nil)

// NavigationService implements bookcat.NavigationService using SQLite.
type NavigationService struct {
	db *DB
}

// NewNavigationService creates a new NavigationService.
func NewNavigationService(db *DB) *NavigationService {
	return &NavigationService{db: db}
}

// UpsertNavigation creates or refreshes a navigation keyed by slug.
func (s *NavigationService) UpsertNavigation(ctx context.Context, n *bookcat.Navigation) error {
	if err := n.Validate(); err != nil {
		return err
	}

	if n.LastScrapedAt.IsZero() {
		n.LastScrapedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO navigations (id, title, slug, last_scraped_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title,
			last_scraped_at = excluded.last_scraped_at
	`, uuid.New().String(), n.Title, n.Slug, n.LastScrapedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	// Read back the canonical row; on conflict the existing ID is kept.
	stored, err := s.FindNavigationBySlug(ctx, n.Slug)
	if err != nil {
		return err
	}
	*n = *stored
	return nil
}

// FindNavigationBySlug retrieves a navigation by slug.
func (s *NavigationService) FindNavigationBySlug(ctx context.Context, slug string) (*bookcat.Navigation, error) {
	var n bookcat.Navigation
	var lastScrapedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, last_scraped_at
		FROM navigations
		WHERE slug = ?
	`, slug).Scan(&n.ID, &n.Title, &n.Slug, &lastScrapedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, bookcat.Errorf(bookcat.ENOTFOUND, "navigation %q not found", slug)
	}
	if err != nil {
		return nil, err
	}

	if n.LastScrapedAt, err = parseRFC3339(lastScrapedAt, "last_scraped_at"); err != nil {
		return nil, err
	}

	return &n, nil
}

// FindNavigations retrieves navigations matching the filter, ordered by title.
func (s *NavigationService) FindNavigations(ctx context.Context, filter bookcat.NavigationFilter) ([]*bookcat.Navigation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, slug, last_scraped_at FROM navigations WHERE 1=1")

	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY title ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var navigations []*bookcat.Navigation
	for rows.Next() {
		var n bookcat.Navigation
		var lastScrapedAt string

		if err := rows.Scan(&n.ID, &n.Title, &n.Slug, &lastScrapedAt); err != nil {
			return nil, err
		}
		if n.LastScrapedAt, err = parseRFC3339(lastScrapedAt, "last_scraped_at"); err != nil {
			return nil, err
		}

		navigations = append(navigations, &n)
	}

	return navigations, rows.Err()
}
