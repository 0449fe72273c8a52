package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/bookcat"
	"github.com/fwojciec/bookcat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, db *sqlite.DB, slug string) *bookcat.Category {
	t.Helper()
	nav := createTestNavigation(t, db, "nav-for-"+slug)
	c := &bookcat.Category{NavigationID: nav.ID, Title: slug, Slug: slug}
	require.NoError(t, sqlite.NewCategoryService(db).UpsertCategory(context.Background(), c))
	return c
}

func testProduct(i int) *bookcat.Product {
	url := fmt.Sprintf("https://books.example.com/p/%d", i)
	return &bookcat.Product{
		SourceID:  bookcat.SourceID(url),
		Title:     fmt.Sprintf("Book %02d", i),
		SourceURL: url,
	}
}

func TestProductService_UpsertProduct(t *testing.T) {
	t.Parallel()

	t.Run("creates product connected to a category", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		p := testProduct(1)
		require.NoError(t, svc.UpsertProduct(ctx, p, cat.ID))
		assert.NotEmpty(t, p.ID)

		products, total, err := svc.FindProductsByCategory(ctx, cat.ID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, p.ID, products[0].ID)
	})

	t.Run("partial re-scrape never clears existing fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		author := "Jane Doe"
		price := 12.99
		full := testProduct(1)
		full.Author = &author
		full.Price = &price
		require.NoError(t, svc.UpsertProduct(ctx, full, cat.ID))

		// Second scrape of the same listing entry misses the optional fields.
		partial := testProduct(1)
		require.NoError(t, svc.UpsertProduct(ctx, partial, cat.ID))

		assert.Equal(t, full.ID, partial.ID)
		require.NotNil(t, partial.Author)
		assert.Equal(t, "Jane Doe", *partial.Author)
		require.NotNil(t, partial.Price)
		assert.Equal(t, 12.99, *partial.Price)
	})

	t.Run("category connections are additive", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat1 := createTestCategory(t, db, "fiction")
		cat2 := createTestCategory(t, db, "bestsellers")

		p := testProduct(1)
		require.NoError(t, svc.UpsertProduct(ctx, p, cat1.ID))
		require.NoError(t, svc.UpsertProduct(ctx, testProduct(1), cat2.ID))

		_, total1, err := svc.FindProductsByCategory(ctx, cat1.ID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total1)

		_, total2, err := svc.FindProductsByCategory(ctx, cat2.ID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total2)
	})

	t.Run("recomputes the category product count", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		require.NoError(t, svc.UpsertProduct(ctx, testProduct(1), cat.ID))
		require.NoError(t, svc.UpsertProduct(ctx, testProduct(2), cat.ID))
		// Re-scraping an existing product must not inflate the count.
		require.NoError(t, svc.UpsertProduct(ctx, testProduct(1), cat.ID))

		stored, err := sqlite.NewCategoryService(db).FindCategoryBySlug(ctx, "fiction")
		require.NoError(t, err)
		assert.Equal(t, 2, stored.ProductCount)
	})
}

func TestProductService_FindProductsByCategory(t *testing.T) {
	t.Parallel()

	t.Run("pages by title with a stable total", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		for i := 1; i <= 5; i++ {
			require.NoError(t, svc.UpsertProduct(ctx, testProduct(i), cat.ID))
		}

		page1, total, err := svc.FindProductsByCategory(ctx, cat.ID, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page1, 2)
		assert.Equal(t, "Book 01", page1[0].Title)
		assert.Equal(t, "Book 02", page1[1].Title)

		page3, total, err := svc.FindProductsByCategory(ctx, cat.ID, 4, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page3, 1)
		assert.Equal(t, "Book 05", page3[0].Title)
	})
}

func TestProductService_FindProductsMissingDetail(t *testing.T) {
	t.Parallel()

	t.Run("excludes products that already have a detail", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		details := sqlite.NewProductDetailService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		p1 := testProduct(1)
		p2 := testProduct(2)
		require.NoError(t, svc.UpsertProduct(ctx, p1, cat.ID))
		require.NoError(t, svc.UpsertProduct(ctx, p2, cat.ID))

		require.NoError(t, details.UpsertProductDetail(ctx, &bookcat.ProductDetail{ProductID: p1.ID}))

		missing, err := svc.FindProductsMissingDetail(ctx, 10)
		require.NoError(t, err)
		require.Len(t, missing, 1)
		assert.Equal(t, p2.ID, missing[0].ID)
	})

	t.Run("respects the limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		for i := 1; i <= 4; i++ {
			require.NoError(t, svc.UpsertProduct(ctx, testProduct(i), cat.ID))
		}

		missing, err := svc.FindProductsMissingDetail(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, missing, 2)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Parallel()

	t.Run("applies only the provided fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		publisher := "Acme Press"
		p := testProduct(1)
		p.Publisher = &publisher
		require.NoError(t, svc.UpsertProduct(ctx, p, cat.ID))

		isbn := "9781234567890"
		updated, err := svc.UpdateProduct(ctx, p.ID, bookcat.ProductUpdate{ISBN: &isbn})
		require.NoError(t, err)

		require.NotNil(t, updated.ISBN)
		assert.Equal(t, isbn, *updated.ISBN)
		require.NotNil(t, updated.Publisher)
		assert.Equal(t, "Acme Press", *updated.Publisher)
	})

	t.Run("returns ENOTFOUND for unknown product", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)

		_, err := svc.UpdateProduct(context.Background(), "nope", bookcat.ProductUpdate{})
		require.Error(t, err)
		assert.Equal(t, bookcat.ENOTFOUND, bookcat.ErrorCode(err))
	})
}

func TestProductService_FindProductByID(t *testing.T) {
	t.Parallel()

	t.Run("includes detail and reviews", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProductService(db)
		details := sqlite.NewProductDetailService(db)
		ctx := context.Background()
		cat := createTestCategory(t, db, "fiction")

		p := testProduct(1)
		require.NoError(t, svc.UpsertProduct(ctx, p, cat.ID))

		desc := "A gripping tale."
		require.NoError(t, details.UpsertProductDetail(ctx, &bookcat.ProductDetail{
			ProductID:   p.ID,
			Description: &desc,
			RatingsAvg:  4.2,
		}))
		require.NoError(t, details.AddReview(ctx, &bookcat.Review{ProductID: p.ID, Text: "Loved it."}))

		found, err := svc.FindProductByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Detail)
		assert.Equal(t, 4.2, found.Detail.RatingsAvg)
		require.Len(t, found.Reviews, 1)
		assert.Equal(t, "Loved it.", found.Reviews[0].Text)
	})
}
