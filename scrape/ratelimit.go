package scrape

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the inter-request delay applied between page fetches.
const DefaultDelay = 2 * time.Second

// Limiter enforces a minimum delay between consecutive page fetches.
// All passes of an orchestrator share one limiter, so the delay holds
// across pass boundaries too.
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter returns a limiter spacing requests at least delay apart.
// A non-positive delay falls back to DefaultDelay.
func NewLimiter(delay time.Duration) *Limiter {
	if delay <= 0 {
		delay = DefaultDelay
	}
	// Burst of 1 makes the first request immediate and every subsequent
	// one wait out the full delay.
	return &Limiter{rl: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is permitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}
