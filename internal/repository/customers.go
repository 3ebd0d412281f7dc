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

// CustomerRepository is the storage gateway for customers.
type CustomerRepository interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Create(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkInsert(ctx context.Context, cs []*entity.Customer) (int, error)
}

type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{pool: pool, logger: logger}
}

const customerColumns = "id, customer_name, phone_number, total_purchase_amt, created_at, updated_at"

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.CustomerName, &c.PhoneNumber, &c.TotalPurchaseAmt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+customerColumns+" FROM customers ORDER BY created_at")
	if err != nil {
		r.logger.Error().Err(err).Msg("customers.list_failed")
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns (nil, nil) when no row matches.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("customers.get_failed")
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers (id, customer_name, phone_number, total_purchase_amt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.CustomerName, c.PhoneNumber, c.TotalPurchaseAmt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("customers.create_failed")
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET customer_name = $2, phone_number = $3, total_purchase_amt = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.CustomerName, c.PhoneNumber, c.TotalPurchaseAmt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("id", c.ID.String()).Msg("customers.update_failed")
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("customers.delete_failed")
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *customerRepository) BulkInsert(ctx context.Context, cs []*entity.Customer) (int, error) {
	if len(cs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, c := range cs {
		batch.Queue(`
			INSERT INTO customers (id, customer_name, phone_number, total_purchase_amt, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), c.CustomerName, c.PhoneNumber, c.TotalPurchaseAmt, now, now,
		)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			r.logger.Error().Err(err).Int("row", i).Msg("customers.bulk_insert_failed")
			return i, fmt.Errorf("bulk insert customers: %w", err)
		}
	}
	return len(cs), nil
}
