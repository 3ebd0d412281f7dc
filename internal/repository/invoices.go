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

// InvoiceRepository is the storage gateway for invoices.
type InvoiceRepository interface {
	List(ctx context.Context) ([]*entity.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Create(ctx context.Context, inv *entity.Invoice) error
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkInsert(ctx context.Context, invs []*entity.Invoice) (int, error)
}

type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewInvoiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{pool: pool, logger: logger}
}

const invoiceColumns = "id, serial_number, customer_name, product_name, quantity, tax, total_amount, date, created_at, updated_at"

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.SerialNumber, &inv.CustomerName, &inv.ProductName,
		&inv.Quantity, &inv.Tax, &inv.TotalAmount, &inv.Date, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+invoiceColumns+" FROM invoices ORDER BY date")
	if err != nil {
		r.logger.Error().Err(err).Msg("invoices.list_failed")
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// GetByID returns (nil, nil) when no row matches.
func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("invoices.get_failed")
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, serial_number, customer_name, product_name, quantity, tax, total_amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.SerialNumber, inv.CustomerName, inv.ProductName,
		inv.Quantity, inv.Tax, inv.TotalAmount, inv.Date, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("invoices.create_failed")
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *entity.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET serial_number = $2, customer_name = $3, product_name = $4, quantity = $5, tax = $6, total_amount = $7, date = $8, updated_at = $9
		WHERE id = $1`,
		inv.ID, inv.SerialNumber, inv.CustomerName, inv.ProductName,
		inv.Quantity, inv.Tax, inv.TotalAmount, inv.Date, inv.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("id", inv.ID.String()).Msg("invoices.update_failed")
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("invoices.delete_failed")
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) BulkInsert(ctx context.Context, invs []*entity.Invoice) (int, error) {
	if len(invs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, inv := range invs {
		date := inv.Date
		if date.IsZero() {
			date = now
		}
		batch.Queue(`
			INSERT INTO invoices (id, serial_number, customer_name, product_name, quantity, tax, total_amount, date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New(), inv.SerialNumber, inv.CustomerName, inv.ProductName,
			inv.Quantity, inv.Tax, inv.TotalAmount, date, now, now,
		)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			r.logger.Error().Err(err).Int("row", i).Msg("invoices.bulk_insert_failed")
			return i, fmt.Errorf("bulk insert invoices: %w", err)
		}
	}
	return len(invs), nil
}
