package service

import (
	"context"

	"product-catalog/internal/model"

	"github.com/samber/mo"
)

// ProductService defines operations for product management.
// It is the place for business rules; today every method forwards to the repository unchanged.
type ProductService interface {
	// GetProductByID retrieves a single product by ID, or mo.None if it does not exist.
	GetProductByID(ctx context.Context, id int64) (mo.Option[model.Product], error)

	// GetAllProducts retrieves every product.
	GetAllProducts(ctx context.Context) ([]model.Product, error)

	// CreateProduct stores a new product and returns it with its assigned ID.
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)

	// UpdateProduct replaces an existing product.
	UpdateProduct(ctx context.Context, product model.Product) error

	// DeleteProduct removes a product. Deleting a missing product succeeds.
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductServiceFactory builds a ProductService for a single request.
type ProductServiceFactory func() ProductService
