package repository

import (
	"context"
	"math"
	"testing"

	"product-catalog/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProductRepositoryContract checks the behaviour every ProductRepository backend must share.
// newRepo must return an empty repository whose identity sequence starts at 1.
func runProductRepositoryContract(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	t.Helper()

	widget := model.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")}

	t.Run("Add then GetByID returns the product", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Add(ctx, widget)
		require.NoError(t, err)
		assert.True(t, widget.Equal(stored))

		got, err := repo.GetByID(ctx, widget.ID)
		require.NoError(t, err)
		require.True(t, got.IsPresent())
		assert.True(t, widget.Equal(got.MustGet()))
	})

	t.Run("Add assigns an ID when none is set", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Add(ctx, model.Product{Name: "First", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		second, err := repo.Add(ctx, model.Product{Name: "Second", Price: decimal.NewFromInt(2)})
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.NotZero(t, second.ID)
		assert.NotEqual(t, first.ID, second.ID)

		got, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		require.True(t, got.IsPresent())
		assert.Equal(t, "Second", got.MustGet().Name)
	})

	t.Run("Generated IDs skip explicitly added IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Add(ctx, model.Product{ID: 1, Name: "Explicit", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)

		generated, err := repo.Add(ctx, model.Product{Name: "Generated", Price: decimal.NewFromInt(2)})
		require.NoError(t, err)
		assert.Greater(t, generated.ID, int64(1))
	})

	t.Run("Generated IDs are not moved by a negative explicit ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Add(ctx, model.Product{ID: -5, Name: "Negative", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)

		generated, err := repo.Add(ctx, model.Product{Name: "Generated", Price: decimal.NewFromInt(2)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), generated.ID)
	})

	t.Run("Add fails once the ID space is exhausted", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		last, err := repo.Add(ctx, model.Product{ID: math.MaxInt64, Name: "Last", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), last.ID)

		_, err = repo.Add(ctx, model.Product{Name: "Overflow", Price: decimal.NewFromInt(2)})
		require.ErrorIs(t, err, model.ErrIDSpaceExhausted)

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(math.MaxInt64), products[0].ID)

		// Explicit IDs below the maximum are still accepted.
		_, err = repo.Add(ctx, model.Product{ID: 7, Name: "Explicit", Price: decimal.NewFromInt(3)})
		assert.NoError(t, err)
	})

	t.Run("Generated IDs stop at the maximum instead of wrapping", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Add(ctx, model.Product{ID: math.MaxInt64 - 1, Name: "Almost", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)

		generated, err := repo.Add(ctx, model.Product{Name: "Last", Price: decimal.NewFromInt(2)})
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), generated.ID)

		_, err = repo.Add(ctx, model.Product{Name: "Overflow", Price: decimal.NewFromInt(3)})
		assert.ErrorIs(t, err, model.ErrIDSpaceExhausted)
	})

	t.Run("Add with taken ID fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Add(ctx, widget)
		require.NoError(t, err)

		_, err = repo.Add(ctx, model.Product{ID: widget.ID, Name: "Clone", Price: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, model.ErrProductExists)

		got, err := repo.GetByID(ctx, widget.ID)
		require.NoError(t, err)
		assert.Equal(t, "Widget", got.MustGet().Name)
	})

	t.Run("GetByID of unknown ID is absent, not an error", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByID(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, got.IsAbsent())
	})

	t.Run("GetAll on empty repository returns empty slice", func(t *testing.T) {
		repo := newRepo(t)

		products, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("GetAll returns added and not deleted products", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := int64(1); i <= 4; i++ {
			_, err := repo.Add(ctx, model.Product{ID: i, Name: "Product", Price: decimal.NewFromInt(i)})
			require.NoError(t, err)
		}
		require.NoError(t, repo.Delete(ctx, 2))

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)

		ids := make([]int64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		assert.ElementsMatch(t, []int64{1, 3, 4}, ids)
	})

	t.Run("Update replaces the whole record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Add(ctx, widget)
		require.NoError(t, err)

		updated := model.Product{ID: widget.ID, Name: "Widget Pro", Price: decimal.RequireFromString("19.5")}
		require.NoError(t, repo.Update(ctx, updated))

		got, err := repo.GetByID(ctx, widget.ID)
		require.NoError(t, err)
		assert.True(t, updated.Equal(got.MustGet()))
	})

	t.Run("Update of unknown ID fails with not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Update(ctx, widget)
		assert.ErrorIs(t, err, model.ErrProductNotFound)

		got, err := repo.GetByID(ctx, widget.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAbsent(), "update must not insert")
	})

	t.Run("Delete removes and is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Add(ctx, widget)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, widget.ID))

		got, err := repo.GetByID(ctx, widget.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAbsent())

		assert.NoError(t, repo.Delete(ctx, widget.ID))
	})

	t.Run("Delete of unknown ID is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Delete(context.Background(), 999))
	})
}
