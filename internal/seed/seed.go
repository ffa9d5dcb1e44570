package seed

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
)

// Loader defines the interface for loading catalogue seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines file and returns the products it contains.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// Result summarises a seeding run.
type Result struct {
	Added   int
	Skipped int
}

// Seeder adds an initial catalogue through the product service.
type Seeder struct {
	newService service.ProductServiceFactory
	logger     zerolog.Logger
}

// NewSeeder creates a seeder that builds its service from factory.
func NewSeeder(factory service.ProductServiceFactory, logger zerolog.Logger) *Seeder {
	return &Seeder{
		newService: factory,
		logger:     logger.With().Str("component", "seeder").Logger(),
	}
}

// Seed adds every product that is not already stored.
// Products with an ID that already exists are skipped, so running it twice is safe.
func (s *Seeder) Seed(ctx context.Context, products []model.Product) (Result, error) {
	svc := s.newService()

	var result Result
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if product.ID != 0 {
			existing, err := svc.GetProductByID(ctx, product.ID)
			if err != nil {
				return result, fmt.Errorf("failed to check product %d: %w", product.ID, err)
			}
			if existing.IsPresent() {
				result.Skipped++
				continue
			}
		}

		if _, err := svc.CreateProduct(ctx, product); err != nil {
			// Another instance may have seeded the same ID since the check above.
			if errors.Is(err, model.ErrProductExists) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("failed to seed product %q: %w", product.Name, err)
		}
		result.Added++
	}

	s.logger.Info().
		Int("added", result.Added).
		Int("skipped", result.Skipped).
		Msg("catalogue seeded")

	return result, nil
}

// Run loads path with loader and seeds the result.
func (s *Seeder) Run(ctx context.Context, loader Loader, path string) (Result, error) {
	products, err := loader.Load(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load seed file: %w", err)
	}
	return s.Seed(ctx, products)
}
