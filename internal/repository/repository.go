package repository

import (
	"context"

	"product-catalog/internal/model"

	"github.com/samber/mo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("product-catalog/repository")

// ProductRepository defines the interface for product data access operations.
// Implementations hide the storage mechanism; callers never see driver types.
type ProductRepository interface {
	// GetByID retrieves a single product by its ID.
	// A missing product is reported as mo.None, never as an error.
	GetByID(ctx context.Context, id int64) (mo.Option[model.Product], error)

	// GetAll retrieves every stored product, ordered by ID.
	GetAll(ctx context.Context) ([]model.Product, error)

	// Add persists a new product and returns the stored record.
	// A zero ID is replaced by the next identity from storage.
	// Returns model.ErrProductExists if an explicit ID is already taken.
	Add(ctx context.Context, product model.Product) (model.Product, error)

	// Update replaces the stored product with the same ID.
	// Returns model.ErrProductNotFound if no such product exists.
	Update(ctx context.Context, product model.Product) error

	// Delete removes the product with the given ID. Deleting a missing product is a no-op.
	Delete(ctx context.Context, id int64) error
}
