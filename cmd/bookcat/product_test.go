package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/bookcat"
	main "github.com/fwojciec/bookcat/cmd/bookcat"
	"github.com/fwojciec/bookcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows product and records a view", func(t *testing.T) {
		t.Parallel()

		desc := "An intriguing story."
		products := &mock.ProductService{
			FindProductByIDFn: func(_ context.Context, id string) (*bookcat.Product, error) {
				require.Equal(t, "prod-1", id)
				return &bookcat.Product{
					ID:        "prod-1",
					Title:     "A Novel",
					SourceURL: "https://books.example.com/a-novel",
					Detail: &bookcat.ProductDetail{
						ProductID:    "prod-1",
						Description:  &desc,
						RatingsAvg:   4.5,
						ReviewsCount: 2,
					},
					Reviews: []*bookcat.Review{
						{ID: "rev-1", ProductID: "prod-1", Text: "Loved it."},
					},
				}, nil
			},
		}

		var recorded *bookcat.ViewHistory
		history := &mock.HistoryService{
			AddViewFn: func(_ context.Context, v *bookcat.ViewHistory) error {
				recorded = v
				return nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Products: products,
			History:  history,
		}

		cmd := &main.ProductCmd{ID: "prod-1", Session: "sess-1"}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "A Novel")
		assert.Contains(t, output, "An intriguing story.")
		assert.Contains(t, output, "rating 4.5 (2 reviews)")
		assert.Contains(t, output, "Loved it.")

		require.NotNil(t, recorded)
		assert.Equal(t, "sess-1", recorded.SessionID)
		assert.Equal(t, "/product/prod-1", recorded.Path)
	})

	t.Run("returns error for unknown product", func(t *testing.T) {
		t.Parallel()

		products := &mock.ProductService{
			FindProductByIDFn: func(_ context.Context, id string) (*bookcat.Product, error) {
				return nil, bookcat.Errorf(bookcat.ENOTFOUND, "product not found")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Products: products,
		}

		cmd := &main.ProductCmd{ID: "nope"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "product not found")
	})
}
