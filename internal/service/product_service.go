package service

import (
	"context"
	"errors"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
	"github.com/samber/mo"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetProductByID retrieves a single product by ID.
func (s *productService) GetProductByID(ctx context.Context, id int64) (mo.Option[model.Product], error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
	}
	return product, err
}

// GetAllProducts retrieves all products.
func (s *productService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
	}
	return products, err
}

// CreateProduct stores a new product.
func (s *productService) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	stored, err := s.productRepo.Add(ctx, product)
	if err != nil {
		s.errorEvent(err).Err(err).Int64("product_id", product.ID).Msg("failed to create product")
	}
	return stored, err
}

// UpdateProduct replaces an existing product.
func (s *productService) UpdateProduct(ctx context.Context, product model.Product) error {
	err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.errorEvent(err).Err(err).Int64("product_id", product.ID).Msg("failed to update product")
	}
	return err
}

// errorEvent logs domain outcomes (not found, conflicts) at debug; the repository
// already reported them. Provider failures stay at error level.
func (s *productService) errorEvent(err error) *zerolog.Event {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return s.logger.Debug()
	}
	return s.logger.Error()
}

// DeleteProduct removes a product.
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
	}
	return err
}
