// Package mock provides function-field test doubles for the bookcat
// service interfaces.
package mock

import (
	"context"
	"time"

	"github.com/fwojciec/bookcat"
)

var _ bookcat.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bookcat.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ bookcat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bookcat.Extractor.
type Extractor struct {
	ExtractNavigationFn    func(html, baseURL string) ([]bookcat.NavigationCandidate, error)
	ExtractCategoriesFn    func(html, baseURL string) ([]bookcat.CategoryCandidate, error)
	ExtractProductsFn      func(html, baseURL string) ([]bookcat.ProductCandidate, error)
	ExtractProductDetailFn func(html, baseURL string) (*bookcat.DetailCandidate, error)
}

func (e *Extractor) ExtractNavigation(html, baseURL string) ([]bookcat.NavigationCandidate, error) {
	return e.ExtractNavigationFn(html, baseURL)
}

func (e *Extractor) ExtractCategories(html, baseURL string) ([]bookcat.CategoryCandidate, error) {
	return e.ExtractCategoriesFn(html, baseURL)
}

func (e *Extractor) ExtractProducts(html, baseURL string) ([]bookcat.ProductCandidate, error) {
	return e.ExtractProductsFn(html, baseURL)
}

func (e *Extractor) ExtractProductDetail(html, baseURL string) (*bookcat.DetailCandidate, error) {
	return e.ExtractProductDetailFn(html, baseURL)
}

var _ bookcat.NavigationService = (*NavigationService)(nil)

// NavigationService is a mock implementation of bookcat.NavigationService.
type NavigationService struct {
	UpsertNavigationFn     func(ctx context.Context, n *bookcat.Navigation) error
	FindNavigationBySlugFn func(ctx context.Context, slug string) (*bookcat.Navigation, error)
	FindNavigationsFn      func(ctx context.Context, filter bookcat.NavigationFilter) ([]*bookcat.Navigation, error)
}

func (s *NavigationService) UpsertNavigation(ctx context.Context, n *bookcat.Navigation) error {
	return s.UpsertNavigationFn(ctx, n)
}

func (s *NavigationService) FindNavigationBySlug(ctx context.Context, slug string) (*bookcat.Navigation, error) {
	return s.FindNavigationBySlugFn(ctx, slug)
}

func (s *NavigationService) FindNavigations(ctx context.Context, filter bookcat.NavigationFilter) ([]*bookcat.Navigation, error) {
	return s.FindNavigationsFn(ctx, filter)
}

var _ bookcat.CategoryService = (*CategoryService)(nil)

// CategoryService is a mock implementation of bookcat.CategoryService.
type CategoryService struct {
	UpsertCategoryFn     func(ctx context.Context, c *bookcat.Category) error
	FindCategoryBySlugFn func(ctx context.Context, slug string) (*bookcat.Category, error)
	FindCategoriesFn     func(ctx context.Context, filter bookcat.CategoryFilter) ([]*bookcat.Category, error)
	FirstCategoryFn      func(ctx context.Context) (*bookcat.Category, error)
}

func (s *CategoryService) UpsertCategory(ctx context.Context, c *bookcat.Category) error {
	return s.UpsertCategoryFn(ctx, c)
}

func (s *CategoryService) FindCategoryBySlug(ctx context.Context, slug string) (*bookcat.Category, error) {
	return s.FindCategoryBySlugFn(ctx, slug)
}

func (s *CategoryService) FindCategories(ctx context.Context, filter bookcat.CategoryFilter) ([]*bookcat.Category, error) {
	return s.FindCategoriesFn(ctx, filter)
}

func (s *CategoryService) FirstCategory(ctx context.Context) (*bookcat.Category, error) {
	return s.FirstCategoryFn(ctx)
}

var _ bookcat.ProductService = (*ProductService)(nil)

// ProductService is a mock implementation of bookcat.ProductService.
type ProductService struct {
	UpsertProductFn             func(ctx context.Context, p *bookcat.Product, categoryID string) error
	FindProductByIDFn           func(ctx context.Context, id string) (*bookcat.Product, error)
	FindProductBySourceURLFn    func(ctx context.Context, sourceURL string) (*bookcat.Product, error)
	FindProductsMissingDetailFn func(ctx context.Context, limit int) ([]*bookcat.Product, error)
	FindProductsByCategoryFn    func(ctx context.Context, categoryID string, offset, limit int) ([]*bookcat.Product, int, error)
	UpdateProductFn             func(ctx context.Context, id string, upd bookcat.ProductUpdate) (*bookcat.Product, error)
}

func (s *ProductService) UpsertProduct(ctx context.Context, p *bookcat.Product, categoryID string) error {
	return s.UpsertProductFn(ctx, p, categoryID)
}

func (s *ProductService) FindProductByID(ctx context.Context, id string) (*bookcat.Product, error) {
	return s.FindProductByIDFn(ctx, id)
}

func (s *ProductService) FindProductBySourceURL(ctx context.Context, sourceURL string) (*bookcat.Product, error) {
	return s.FindProductBySourceURLFn(ctx, sourceURL)
}

func (s *ProductService) FindProductsMissingDetail(ctx context.Context, limit int) ([]*bookcat.Product, error) {
	return s.FindProductsMissingDetailFn(ctx, limit)
}

func (s *ProductService) FindProductsByCategory(ctx context.Context, categoryID string, offset, limit int) ([]*bookcat.Product, int, error) {
	return s.FindProductsByCategoryFn(ctx, categoryID, offset, limit)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, upd bookcat.ProductUpdate) (*bookcat.Product, error) {
	return s.UpdateProductFn(ctx, id, upd)
}

var _ bookcat.ProductDetailService = (*ProductDetailService)(nil)

// ProductDetailService is a mock implementation of
// bookcat.ProductDetailService.
type ProductDetailService struct {
	UpsertProductDetailFn func(ctx context.Context, d *bookcat.ProductDetail) error
	FindProductDetailFn   func(ctx context.Context, productID string) (*bookcat.ProductDetail, error)
	AddReviewFn           func(ctx context.Context, r *bookcat.Review) error
	FindReviewsFn         func(ctx context.Context, productID string) ([]*bookcat.Review, error)
}

func (s *ProductDetailService) UpsertProductDetail(ctx context.Context, d *bookcat.ProductDetail) error {
	return s.UpsertProductDetailFn(ctx, d)
}

func (s *ProductDetailService) FindProductDetail(ctx context.Context, productID string) (*bookcat.ProductDetail, error) {
	return s.FindProductDetailFn(ctx, productID)
}

func (s *ProductDetailService) AddReview(ctx context.Context, r *bookcat.Review) error {
	return s.AddReviewFn(ctx, r)
}

func (s *ProductDetailService) FindReviews(ctx context.Context, productID string) ([]*bookcat.Review, error) {
	return s.FindReviewsFn(ctx, productID)
}

var _ bookcat.JobService = (*JobService)(nil)

// JobService is a mock implementation of bookcat.JobService.
type JobService struct {
	CreateJobFn        func(ctx context.Context, job *bookcat.ScrapeJob) error
	FindJobByIDFn      func(ctx context.Context, id string) (*bookcat.ScrapeJob, error)
	MarkJobRunningFn   func(ctx context.Context, id string) error
	MarkJobCompletedFn func(ctx context.Context, id string) error
	MarkJobFailedFn    func(ctx context.Context, id, errorLog string) error
	FindRecentJobsFn   func(ctx context.Context, limit int) ([]*bookcat.ScrapeJob, error)
	JobStatsFn         func(ctx context.Context) (map[bookcat.JobStatus]int, error)
}

func (s *JobService) CreateJob(ctx context.Context, job *bookcat.ScrapeJob) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*bookcat.ScrapeJob, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) MarkJobRunning(ctx context.Context, id string) error {
	return s.MarkJobRunningFn(ctx, id)
}

func (s *JobService) MarkJobCompleted(ctx context.Context, id string) error {
	return s.MarkJobCompletedFn(ctx, id)
}

func (s *JobService) MarkJobFailed(ctx context.Context, id, errorLog string) error {
	return s.MarkJobFailedFn(ctx, id, errorLog)
}

func (s *JobService) FindRecentJobs(ctx context.Context, limit int) ([]*bookcat.ScrapeJob, error) {
	return s.FindRecentJobsFn(ctx, limit)
}

func (s *JobService) JobStats(ctx context.Context) (map[bookcat.JobStatus]int, error) {
	return s.JobStatsFn(ctx)
}

var _ bookcat.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of bookcat.HistoryService.
type HistoryService struct {
	AddViewFn     func(ctx context.Context, v *bookcat.ViewHistory) error
	RecentViewsFn func(ctx context.Context, n int) ([]*bookcat.ViewHistory, error)
}

func (s *HistoryService) AddView(ctx context.Context, v *bookcat.ViewHistory) error {
	return s.AddViewFn(ctx, v)
}

func (s *HistoryService) RecentViews(ctx context.Context, n int) ([]*bookcat.ViewHistory, error) {
	return s.RecentViewsFn(ctx, n)
}

var _ bookcat.CacheService = (*CacheService)(nil)

// CacheService is a mock implementation of bookcat.CacheService.
type CacheService struct {
	PutCacheEntryFn   func(ctx context.Context, key string, ttl time.Duration) error
	CacheEntryFreshFn func(ctx context.Context, key string) (bool, error)
	SweepCacheFn      func(ctx context.Context) (int, error)
}

func (s *CacheService) PutCacheEntry(ctx context.Context, key string, ttl time.Duration) error {
	return s.PutCacheEntryFn(ctx, key, ttl)
}

func (s *CacheService) CacheEntryFresh(ctx context.Context, key string) (bool, error) {
	return s.CacheEntryFreshFn(ctx, key)
}

func (s *CacheService) SweepCache(ctx context.Context) (int, error) {
	return s.SweepCacheFn(ctx)
}
