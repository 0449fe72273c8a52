package bookcat

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content; target storefronts render listings client-side, so a fetch must
// wait for the page's network activity to settle, not just for the initial
// HTML.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to settle, and
	// returns the rendered HTML. Fetch does not retry; failures surface
	// to the caller. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetch resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
