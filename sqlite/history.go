package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bookcat.HistoryService = (*HistoryService)(nil)

// HistoryService implements bookcat.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// AddView records a page view. An empty session ID is stored as "anon".
func (s *HistoryService) AddView(ctx context.Context, v *bookcat.ViewHistory) error {
	if err := v.Validate(); err != nil {
		return err
	}

	v.ID = uuid.New().String()
	if v.SessionID == "" {
		v.SessionID = "anon"
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO view_history (id, session_id, path, created_at)
		VALUES (?, ?, ?, ?)
	`, v.ID, v.SessionID, v.Path, v.CreatedAt.UTC().Format(time.RFC3339))

	return err
}

// RecentViews retrieves the n most recent views, newest first.
func (s *HistoryService) RecentViews(ctx context.Context, n int) ([]*bookcat.ViewHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, path, created_at
		FROM view_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*bookcat.ViewHistory
	for rows.Next() {
		var v bookcat.ViewHistory
		var createdAt string

		if err := rows.Scan(&v.ID, &v.SessionID, &v.Path, &createdAt); err != nil {
			return nil, err
		}
		if v.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		views = append(views, &v)
	}

	return views, rows.Err()
}
