// Package rod provides a browser-based implementation of bookcat.Fetcher
// using Chrome automation. Storefront pages render listings client-side,
// so fetching waits for network activity to settle before returning HTML.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the hard per-fetch timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultSettleDelay is how long the network must stay quiet before a page
// counts as settled.
const DefaultSettleDelay = 500 * time.Millisecond

// Ensure Fetcher implements bookcat.Fetcher at compile time.
var _ bookcat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Each fetch opens one page and closes it before returning, even on error.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	bm      *BrowserManager
	timeout time.Duration
	settle  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the hard per-fetch timeout.
// Defaults to DefaultFetchTimeout (30s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the network-quiet window required before a page
// counts as settled. Defaults to DefaultSettleDelay (500ms).
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	bm, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.bm = bm

	return f, nil
}

// Fetch navigates to the URL, waits for the load event and for network
// requests to go idle, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.bm.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// The load event fires before client-side rendering finishes; wait for
	// outstanding requests to go quiet for the settle window.
	page.WaitRequestIdle(f.settle, nil, nil, nil)()

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.bm.IncrementPageCount()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.bm.Close()
}
