package records

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nmercado/docledger/internal/entity"
	"github.com/nmercado/docledger/internal/repository"
)

// InvoiceInput carries the caller-supplied fields for a create. Date is
// optional and defaults to the creation time when absent.
type InvoiceInput struct {
	SerialNumber string          `json:"serialNumber"`
	CustomerName string          `json:"customerName"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	Tax          decimal.Decimal `json:"tax"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Date         *time.Time      `json:"date"`
}

// InvoicePatch is a merge-patch: nil fields leave stored values unchanged.
type InvoicePatch struct {
	SerialNumber *string          `json:"serialNumber"`
	CustomerName *string          `json:"customerName"`
	ProductName  *string          `json:"productName"`
	Quantity     *int             `json:"quantity"`
	Tax          *decimal.Decimal `json:"tax"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	Date         *time.Time       `json:"date"`
}

// InvoiceService handles invoice business logic.
type InvoiceService struct {
	repo   repository.InvoiceRepository
	logger zerolog.Logger
}

func NewInvoiceService(repo repository.InvoiceRepository, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, logger: logger}
}

// List returns all invoices.
func (s *InvoiceService) List(ctx context.Context) ([]*entity.Invoice, error) {
	return s.repo.List(ctx)
}

func (s *InvoiceService) Get(ctx context.Context, id string) Result {
	if strings.TrimSpace(id) == "" {
		return Result{Success: true, Data: nil}
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("invoices.get.bad_id")
		return failure("error fetching invoice")
	}
	inv, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("invoices.get.failed")
		return failure("error fetching invoice")
	}
	if inv == nil {
		return failure("invoice not found")
	}
	return ok(inv)
}

func (s *InvoiceService) Create(ctx context.Context, in InvoiceInput) Result {
	inv := &entity.Invoice{
		SerialNumber: in.SerialNumber,
		CustomerName: in.CustomerName,
		ProductName:  in.ProductName,
		Quantity:     in.Quantity,
		Tax:          in.Tax,
		TotalAmount:  in.TotalAmount,
	}
	if in.Date != nil {
		inv.Date = *in.Date
	} else {
		inv.Date = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.Error().Err(err).Msg("invoices.create.failed")
		return failure("error creating invoice")
	}
	return ok(inv)
}

func (s *InvoiceService) Update(ctx context.Context, id string, patch InvoicePatch) Result {
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("invoices.update.bad_id")
		return failure("error updating invoice")
	}
	inv, err := s.repo.GetByID(ctx, uid)
	if err != nil || inv == nil {
		s.logger.Error().Str("id", id).Err(err).Msg("invoices.update.load_failed")
		return failure("error updating invoice")
	}

	if patch.SerialNumber != nil {
		inv.SerialNumber = *patch.SerialNumber
	}
	if patch.CustomerName != nil {
		inv.CustomerName = *patch.CustomerName
	}
	if patch.ProductName != nil {
		inv.ProductName = *patch.ProductName
	}
	if patch.Quantity != nil {
		inv.Quantity = *patch.Quantity
	}
	if patch.Tax != nil {
		inv.Tax = *patch.Tax
	}
	if patch.TotalAmount != nil {
		inv.TotalAmount = *patch.TotalAmount
	}
	if patch.Date != nil {
		inv.Date = *patch.Date
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("invoices.update.failed")
		return failure("error updating invoice")
	}
	return ok(inv)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) Result {
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("invoices.delete.bad_id")
		return failure("error deleting invoice")
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("invoices.delete.failed")
		return failure("error deleting invoice")
	}
	return Result{Success: true}
}
