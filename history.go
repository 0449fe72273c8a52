package bookcat

import (
	"context"
	"time"
)

// ViewHistory records a single catalog page view for a browsing session.
type ViewHistory struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the view contains invalid fields.
func (v *ViewHistory) Validate() error {
	if v.Path == "" {
		return Errorf(EINVALID, "view path required")
	}
	return nil
}

// HistoryService represents a service for view-history tracking.
type HistoryService interface {
	// AddView records a page view. An empty SessionID is stored as "anon".
	AddView(ctx context.Context, v *ViewHistory) error

	// RecentViews retrieves the n most recent views, newest first.
	RecentViews(ctx context.Context, n int) ([]*ViewHistory, error)
}
