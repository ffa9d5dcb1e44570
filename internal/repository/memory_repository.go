package repository

import (
	"context"
	"math"
	"sort"
	"sync"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/samber/mo"
	"go.opentelemetry.io/otel/attribute"
)

// memoryProductRepository is an in-memory implementation of ProductRepository.
// It is safe for concurrent use and meant to be shared by every request.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	nextID   int64
	// exhausted is set once math.MaxInt64 has been used; nextID never wraps.
	exhausted bool
	logger    zerolog.Logger
}

// NewMemoryProductRepository creates an empty in-memory product repository.
func NewMemoryProductRepository(logger zerolog.Logger) ProductRepository {
	return &memoryProductRepository{
		products: make(map[int64]model.Product),
		nextID:   1,
		logger:   logger.With().Str("repository", "product").Str("backend", "memory").Logger(),
	}
}

// GetByID retrieves a product by ID.
func (r *memoryProductRepository) GetByID(ctx context.Context, id int64) (mo.Option[model.Product], error) {
	_, span := tracer.Start(ctx, "ProductRepository.GetByID")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		r.logger.Debug().Int64("product_id", id).Msg("product not found")
		return mo.None[model.Product](), nil
	}

	return mo.Some(product), nil
}

// GetAll retrieves all products ordered by ID.
func (r *memoryProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	_, span := tracer.Start(ctx, "ProductRepository.GetAll")
	defer span.End()

	r.mu.RLock()
	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	r.mu.RUnlock()

	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})

	span.SetAttributes(attribute.Int("product.count", len(products)))

	return products, nil
}

// Add stores a new product, assigning the next free ID when none is set.
func (r *memoryProductRepository) Add(ctx context.Context, product model.Product) (model.Product, error) {
	_, span := tracer.Start(ctx, "ProductRepository.Add")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		id, ok := r.nextFreeID()
		if !ok {
			r.logger.Error().Msg("product id space exhausted")
			return model.Product{}, model.ErrIDSpaceExhausted
		}
		product.ID = id
	} else if _, exists := r.products[product.ID]; exists {
		r.logger.Warn().Int64("product_id", product.ID).Msg("product already exists")
		return model.Product{}, model.ErrProductExists
	}

	r.advancePast(product.ID)

	r.products[product.ID] = product

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	r.logger.Debug().Int64("product_id", product.ID).Msg("product added")

	return product, nil
}

// nextFreeID returns the lowest untaken ID at or after nextID. Callers hold the write lock.
func (r *memoryProductRepository) nextFreeID() (int64, bool) {
	if r.exhausted {
		return 0, false
	}
	for {
		if _, taken := r.products[r.nextID]; !taken {
			return r.nextID, true
		}
		if r.nextID == math.MaxInt64 {
			r.exhausted = true
			return 0, false
		}
		r.nextID++
	}
}

// advancePast moves nextID beyond id, like setval on a sequence. It never moves back.
func (r *memoryProductRepository) advancePast(id int64) {
	if id < r.nextID {
		return
	}
	if id == math.MaxInt64 {
		r.nextID = math.MaxInt64
		r.exhausted = true
		return
	}
	r.nextID = id + 1
}

// Update replaces an existing product.
func (r *memoryProductRepository) Update(ctx context.Context, product model.Product) error {
	_, span := tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", product.ID))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		r.logger.Debug().Int64("product_id", product.ID).Msg("product to update not found")
		return model.ErrProductNotFound
	}

	r.products[product.ID] = product

	return nil
}

// Delete removes a product if present.
func (r *memoryProductRepository) Delete(ctx context.Context, id int64) error {
	_, span := tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)

	return nil
}
