// Package scrape provides scrape pass orchestration. It sequences
// fetch → extract → upsert cycles for one job at a time, visiting target
// pages strictly sequentially with an enforced inter-request delay, and
// tracks every invocation as a job with a monotonic status lifecycle.
package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/bloom"
)

// DefaultDetailLimit bounds how many products the detail pass visits per
// run, to avoid overwhelming the target site.
const DefaultDetailLimit = 10

// DefaultCacheTTL is how long a fetched page counts as fresh.
const DefaultCacheTTL = 24 * time.Hour

// DefaultNavigation is the owner created by the category pass when no
// navigation heading has been scraped yet.
var DefaultNavigation = bookcat.Navigation{Title: "Sample Store", Slug: "sample-store"}

// Orchestrator runs scrape passes. Each job executes exactly one pass
// matching its target type; within a pass, pages are fetched one at a
// time. Upserts commit independently as they occur, so a failed pass
// keeps the records persisted before the failure (at-least-once, no
// rollback).
type Orchestrator struct {
	Fetcher     bookcat.Fetcher
	Extractor   bookcat.Extractor
	Navigations bookcat.NavigationService
	Categories  bookcat.CategoryService
	Products    bookcat.ProductService
	Details     bookcat.ProductDetailService
	Jobs        bookcat.JobService

	// Cache, when set, records a freshness entry per fetched page.
	// Entries never gate a fetch.
	Cache bookcat.CacheService

	// Limiter, when set, enforces the inter-request delay.
	Limiter *Limiter

	// ListingURLs are the category-listing pages the product pass visits.
	// When empty the pass visits only the job's target URL.
	ListingURLs []string

	// DetailLimit bounds the detail pass. Defaults to DefaultDetailLimit.
	DetailLimit int

	// CacheTTL is the freshness window for cache entries.
	// Defaults to DefaultCacheTTL.
	CacheTTL time.Duration

	// Logger receives per-record skip diagnostics. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// Run executes the pass for the job and finalizes its status. Any error
// escaping the pass marks the job failed with the error message captured;
// the error is also returned for the caller's logging.
func (o *Orchestrator) Run(ctx context.Context, job *bookcat.ScrapeJob) error {
	if err := o.Jobs.MarkJobRunning(ctx, job.ID); err != nil {
		return err
	}

	if err := o.runPass(ctx, job); err != nil {
		if markErr := o.Jobs.MarkJobFailed(ctx, job.ID, err.Error()); markErr != nil {
			o.logger().Error("mark job failed", "job", job.ID, "err", markErr)
		}
		return err
	}

	return o.Jobs.MarkJobCompleted(ctx, job.ID)
}

// runPass dispatches to the pass matching the job's target type.
func (o *Orchestrator) runPass(ctx context.Context, job *bookcat.ScrapeJob) error {
	// Visited tracking is per job: re-running a job re-fetches everything.
	visited := bloom.NewFilter(1024, 0.001)

	switch job.TargetType {
	case bookcat.TargetNavigation:
		return o.navigationPass(ctx, visited, job.TargetURL)
	case bookcat.TargetCategory:
		return o.categoryPass(ctx, visited, job.TargetURL)
	case bookcat.TargetProduct:
		return o.productPass(ctx, visited, job.TargetURL)
	case bookcat.TargetProductDetail:
		return o.detailPass(ctx, visited)
	default:
		return bookcat.Errorf(bookcat.EINVALID, "unknown job target type %q", job.TargetType)
	}
}

// navigationPass scrapes the site root and upserts navigation headings.
func (o *Orchestrator) navigationPass(ctx context.Context, visited *bloom.Filter, url string) error {
	html, ok, err := o.fetchPage(ctx, visited, bookcat.TargetNavigation, url)
	if err != nil || !ok {
		return err
	}

	items, err := o.Extractor.ExtractNavigation(html, url)
	if err != nil {
		return err
	}

	var saved int
	for _, item := range items {
		n := &bookcat.Navigation{Title: item.Title, Slug: item.Slug}
		if err := o.Navigations.UpsertNavigation(ctx, n); err != nil {
			o.logger().Error("upsert navigation", "slug", item.Slug, "err", err)
			continue
		}
		saved++
	}

	o.logger().Info("navigation pass", "url", url, "extracted", len(items), "saved", saved)
	return nil
}

// categoryPass scrapes a category index page. When no navigation heading
// exists yet a default one is created to own the categories.
func (o *Orchestrator) categoryPass(ctx context.Context, visited *bloom.Filter, url string) error {
	html, ok, err := o.fetchPage(ctx, visited, bookcat.TargetCategory, url)
	if err != nil || !ok {
		return err
	}

	candidates, err := o.Extractor.ExtractCategories(html, url)
	if err != nil {
		return err
	}

	nav, err := o.owningNavigation(ctx)
	if err != nil {
		return err
	}

	var saved int
	for _, c := range candidates {
		category := &bookcat.Category{
			NavigationID: nav.ID,
			Title:        c.Title,
			Slug:         c.Slug,
		}
		if err := o.Categories.UpsertCategory(ctx, category); err != nil {
			o.logger().Error("upsert category", "slug", c.Slug, "err", err)
			continue
		}
		saved++
	}

	o.logger().Info("category pass", "url", url, "extracted", len(candidates), "saved", saved)
	return nil
}

// productPass scrapes the configured listing pages sequentially. Products
// attach to the first existing category: a deliberate fallback, since no
// precise mapping is derivable from the crawl context. When no category
// exists the extracted products are skipped, not persisted unowned.
func (o *Orchestrator) productPass(ctx context.Context, visited *bloom.Filter, targetURL string) error {
	urls := o.ListingURLs
	if len(urls) == 0 {
		urls = []string{targetURL}
	}

	category, err := o.Categories.FirstCategory(ctx)
	if err != nil {
		if bookcat.ErrorCode(err) == bookcat.ENOTFOUND {
			o.logger().Warn("product pass: no category to associate products with, skipping")
			return nil
		}
		return err
	}

	for _, url := range urls {
		html, ok, err := o.fetchPage(ctx, visited, bookcat.TargetProduct, url)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		candidates, err := o.Extractor.ExtractProducts(html, url)
		if err != nil {
			return err
		}

		var saved int
		for _, c := range candidates {
			p := &bookcat.Product{
				SourceID:  c.SourceID,
				Title:     c.Title,
				Author:    c.Author,
				Price:     c.Price,
				ImageURL:  c.ImageURL,
				SourceURL: c.SourceURL,
			}
			if err := o.Products.UpsertProduct(ctx, p, category.ID); err != nil {
				o.logger().Error("upsert product", "sourceUrl", c.SourceURL, "err", err)
				continue
			}
			saved++
		}

		o.logger().Info("product pass page", "url", url, "extracted", len(candidates), "saved", saved)
	}

	return nil
}

// detailPass visits the source pages of products lacking a detail record,
// bounded by DetailLimit, and upserts detail plus bibliographic fields.
func (o *Orchestrator) detailPass(ctx context.Context, visited *bloom.Filter) error {
	limit := o.DetailLimit
	if limit <= 0 {
		limit = DefaultDetailLimit
	}

	products, err := o.Products.FindProductsMissingDetail(ctx, limit)
	if err != nil {
		return err
	}

	for _, p := range products {
		html, ok, err := o.fetchPage(ctx, visited, bookcat.TargetProductDetail, p.SourceURL)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		candidate, err := o.Extractor.ExtractProductDetail(html, p.SourceURL)
		if err != nil {
			return err
		}

		detail := &bookcat.ProductDetail{
			ProductID:   p.ID,
			Description: candidate.Description,
		}
		if candidate.RatingsAvg != nil {
			detail.RatingsAvg = *candidate.RatingsAvg
		}
		if candidate.ReviewsCount != nil {
			detail.ReviewsCount = *candidate.ReviewsCount
		} else {
			detail.ReviewsCount = len(candidate.Reviews)
		}

		if err := o.Details.UpsertProductDetail(ctx, detail); err != nil {
			o.logger().Error("upsert product detail", "product", p.ID, "err", err)
			continue
		}

		if candidate.ISBN != nil || candidate.Publisher != nil || candidate.PublicationDate != nil {
			upd := bookcat.ProductUpdate{
				ISBN:            candidate.ISBN,
				Publisher:       candidate.Publisher,
				PublicationDate: candidate.PublicationDate,
			}
			if _, err := o.Products.UpdateProduct(ctx, p.ID, upd); err != nil {
				o.logger().Error("update product metadata", "product", p.ID, "err", err)
			}
		}

		// The detail pass only ever visits products without a detail, so
		// appending here cannot duplicate reviews.
		for _, r := range candidate.Reviews {
			review := &bookcat.Review{
				ProductID: p.ID,
				Author:    r.Author,
				Rating:    r.Rating,
				Text:      r.Text,
			}
			if err := o.Details.AddReview(ctx, review); err != nil {
				o.logger().Error("add review", "product", p.ID, "err", err)
			}
		}
	}

	o.logger().Info("detail pass", "visited", len(products), "limit", limit)
	return nil
}

// fetchPage applies the inter-request delay, skips URLs already visited
// within this run, fetches the page, and records a freshness cache entry.
// The second return value reports whether a page was actually fetched.
func (o *Orchestrator) fetchPage(ctx context.Context, visited *bloom.Filter, targetType bookcat.TargetType, url string) (string, bool, error) {
	if visited.Test(url) {
		return "", false, nil
	}

	if o.Limiter != nil {
		if err := o.Limiter.Wait(ctx); err != nil {
			return "", false, err
		}
	}

	html, err := o.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", false, err
	}
	visited.Add(url)

	if o.Cache != nil {
		ttl := o.CacheTTL
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		if err := o.Cache.PutCacheEntry(ctx, CacheKey(targetType, url), ttl); err != nil {
			o.logger().Warn("record cache entry", "url", url, "err", err)
		}
	}

	return html, true, nil
}

// owningNavigation returns the navigation that owns scraped categories,
// creating the default one when none exists yet.
func (o *Orchestrator) owningNavigation(ctx context.Context) (*bookcat.Navigation, error) {
	navs, err := o.Navigations.FindNavigations(ctx, bookcat.NavigationFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(navs) > 0 {
		return navs[0], nil
	}

	nav := DefaultNavigation
	if err := o.Navigations.UpsertNavigation(ctx, &nav); err != nil {
		return nil, err
	}
	return &nav, nil
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
