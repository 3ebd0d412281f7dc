package records

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nmercado/docledger/internal/entity"
	"github.com/nmercado/docledger/internal/repository"
)

type CustomerInput struct {
	CustomerName     string          `json:"customerName"`
	PhoneNumber      string          `json:"phoneNumber"`
	TotalPurchaseAmt decimal.Decimal `json:"totalPurchaseAmt"`
}

// CustomerPatch is a merge-patch: nil fields leave stored values unchanged.
type CustomerPatch struct {
	CustomerName     *string          `json:"customerName"`
	PhoneNumber      *string          `json:"phoneNumber"`
	TotalPurchaseAmt *decimal.Decimal `json:"totalPurchaseAmt"`
}

// CustomerService handles customer business logic.
type CustomerService struct {
	repo   repository.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo repository.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]*entity.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id string) Result {
	if strings.TrimSpace(id) == "" {
		return Result{Success: true, Data: nil}
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("customers.get.bad_id")
		return failure("error fetching customer")
	}
	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("customers.get.failed")
		return failure("error fetching customer")
	}
	if c == nil {
		return failure("customer not found")
	}
	return ok(c)
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) Result {
	c := &entity.Customer{
		CustomerName:     in.CustomerName,
		PhoneNumber:      in.PhoneNumber,
		TotalPurchaseAmt: in.TotalPurchaseAmt,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("customers.create.failed")
		return failure("error creating customer")
	}
	return ok(c)
}

func (s *CustomerService) Update(ctx context.Context, id string, patch CustomerPatch) Result {
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("customers.update.bad_id")
		return failure("error updating customer")
	}
	c, err := s.repo.GetByID(ctx, uid)
	if err != nil || c == nil {
		s.logger.Error().Str("id", id).Err(err).Msg("customers.update.load_failed")
		return failure("error updating customer")
	}

	if patch.CustomerName != nil {
		c.CustomerName = *patch.CustomerName
	}
	if patch.PhoneNumber != nil {
		c.PhoneNumber = *patch.PhoneNumber
	}
	if patch.TotalPurchaseAmt != nil {
		c.TotalPurchaseAmt = *patch.TotalPurchaseAmt
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("customers.update.failed")
		return failure("error updating customer")
	}
	return ok(c)
}

func (s *CustomerService) Delete(ctx context.Context, id string) Result {
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("customers.delete.bad_id")
		return failure("error deleting customer")
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("customers.delete.failed")
		return failure("error deleting customer")
	}
	return Result{Success: true}
}
