package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/entity"
)

// ProductRepository is the storage gateway for products.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkInsert(ctx context.Context, ps []*entity.Product) (int, error)
}

type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{pool: pool, logger: logger}
}

const productColumns = "id, name, quantity, unitprice, tax, pricewithtax, created_at, updated_at"

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Quantity, &p.UnitPrice, &p.Tax, &p.PriceWithTax, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at")
	if err != nil {
		r.logger.Error().Err(err).Msg("products.list_failed")
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns (nil, nil) when no row matches.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("products.get_failed")
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) error {
	now := time.Now().UTC()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, quantity, unitprice, tax, pricewithtax, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Quantity, p.UnitPrice, p.Tax, p.PriceWithTax, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("products.create_failed")
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, quantity = $3, unitprice = $4, tax = $5, pricewithtax = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Name, p.Quantity, p.UnitPrice, p.Tax, p.PriceWithTax, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("id", p.ID.String()).Msg("products.update_failed")
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("products.delete_failed")
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// BulkInsert writes all products in one batch round trip. There is no
// cross-entity transaction; rows already written by other repositories stay
// committed if this batch fails.
func (r *productRepository) BulkInsert(ctx context.Context, ps []*entity.Product) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, p := range ps {
		batch.Queue(`
			INSERT INTO products (id, name, quantity, unitprice, tax, pricewithtax, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), p.Name, p.Quantity, p.UnitPrice, p.Tax, p.PriceWithTax, now, now,
		)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			r.logger.Error().Err(err).Int("row", i).Msg("products.bulk_insert_failed")
			return i, fmt.Errorf("bulk insert products: %w", err)
		}
	}
	return len(ps), nil
}
