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

// ProductInput carries the caller-supplied fields for a create. PriceWithTax
// is deliberately absent: it is always recomputed as UnitPrice + Tax.
type ProductInput struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitprice"`
	Tax       decimal.Decimal `json:"tax"`
}

// ProductPatch is a merge-patch: nil fields leave stored values unchanged.
type ProductPatch struct {
	Name      *string          `json:"name"`
	Quantity  *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitprice"`
	Tax       *decimal.Decimal `json:"tax"`
}

// ProductService handles product business logic.
type ProductService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	return s.repo.List(ctx)
}

// Get distinguishes "no id given" (success with null data) from "id given but
// not found" (failure).
func (s *ProductService) Get(ctx context.Context, id string) Result {
	if strings.TrimSpace(id) == "" {
		return Result{Success: true, Data: nil}
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("products.get.bad_id")
		return failure("error fetching product")
	}
	p, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("products.get.failed")
		return failure("error fetching product")
	}
	if p == nil {
		return failure("product not found")
	}
	return ok(p)
}

// Create recomputes priceWithTax server-side.
func (s *ProductService) Create(ctx context.Context, in ProductInput) Result {
	p := &entity.Product{
		Name:         in.Name,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Tax:          in.Tax,
		PriceWithTax: in.UnitPrice.Add(in.Tax),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("products.create.failed")
		return failure("error creating product")
	}
	return ok(p)
}

// Update applies a merge-patch: only supplied fields overwrite stored values.
// priceWithTax is recomputed from the post-patch unitPrice and tax.
func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) Result {
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("products.update.bad_id")
		return failure("error updating product")
	}
	p, err := s.repo.GetByID(ctx, uid)
	if err != nil || p == nil {
		s.logger.Error().Str("id", id).Err(err).Msg("products.update.load_failed")
		return failure("error updating product")
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.Tax != nil {
		p.Tax = *patch.Tax
	}
	p.PriceWithTax = p.UnitPrice.Add(p.Tax)

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("products.update.failed")
		return failure("error updating product")
	}
	return ok(p)
}

// Delete is an unconditional hard delete by identifier.
func (s *ProductService) Delete(ctx context.Context, id string) Result {
	uid, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn().Str("id", id).Err(err).Msg("products.delete.bad_id")
		return failure("error deleting product")
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		s.logger.Error().Str("id", id).Err(err).Msg("products.delete.failed")
		return failure("error deleting product")
	}
	return Result{Success: true}
}
