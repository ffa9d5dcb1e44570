package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/samber/mo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PostgreSQL SQLSTATE codes mapped to domain errors.
const (
	uniqueViolation              = "23505"
	sequenceGeneratorLimitExceed = "2200H"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Str("backend", "postgres").Logger(),
	}
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (mo.Option[model.Product], error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.GetByID")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	query := `
		SELECT id, name, price
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return mo.None[model.Product](), nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return mo.None[model.Product](), fmt.Errorf("failed to query product: %w", err)
	}

	return mo.Some(p), nil
}

// GetAll retrieves all products ordered by ID.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.GetAll")
	defer span.End()

	query := `
		SELECT id, name, price
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			span.RecordError(err)
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	return products, nil
}

// Add inserts a new product. An explicit ID moves the id sequence forward
// (never back) so later generated IDs cannot collide with it. Once the sequence
// is at its maximum, generated inserts fail with ErrIDSpaceExhausted.
func (r *productRepository) Add(ctx context.Context, product model.Product) (model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductRepository.Add")
	defer span.End()

	var stored model.Product
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if product.ID == 0 {
			return tx.QueryRow(ctx, `
				INSERT INTO products (name, price)
				VALUES ($1, $2)
				RETURNING id, name, price
			`, product.Name, product.Price).Scan(&stored.ID, &stored.Name, &stored.Price)
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO products (id, name, price)
			VALUES ($1, $2, $3)
			RETURNING id, name, price
		`, product.ID, product.Name, product.Price).Scan(&stored.ID, &stored.Name, &stored.Price)
		if err != nil {
			return err
		}

		// Only IDs at or beyond the sequence position move it, so an explicit
		// zero or negative ID leaves the next generated ID untouched.
		_, err = tx.Exec(ctx, `
			SELECT setval('products_id_seq', $1::BIGINT)
			FROM products_id_seq
			WHERE $1::BIGINT >= last_value
		`, stored.ID)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				r.logger.Warn().Int64("product_id", product.ID).Msg("product already exists")
				return model.Product{}, model.ErrProductExists
			case sequenceGeneratorLimitExceed:
				r.logger.Error().Msg("product id space exhausted")
				return model.Product{}, model.ErrIDSpaceExhausted
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to insert product")
		return model.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	span.SetAttributes(attribute.Int64("product.id", stored.ID))
	r.logger.Debug().Int64("product_id", stored.ID).Msg("product added")

	return stored, nil
}

// Update replaces name and price of an existing product.
func (r *productRepository) Update(ctx context.Context, product model.Product) error {
	ctx, span := tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", product.ID))

	query := `
		UPDATE products
		SET name = $2, price = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, product.ID, product.Name, product.Price)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", product.ID).Msg("product to update not found")
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by ID. Missing rows are not an error.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", id).
		Int64("rows_affected", tag.RowsAffected()).
		Msg("product deleted")

	return nil
}
