package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/entity"
	"github.com/nmercado/docledger/internal/extract"
)

// persist issues one bulk insert per non-empty record group, remapping the
// extraction-schema property names onto the storage schema (unitPrice →
// unitprice, priceWithTax → pricewithtax). There is no cross-entity
// transaction: a failure in one group leaves earlier groups committed and is
// reported as the overall error.
func (p *Pipeline) persist(ctx context.Context, b extract.Batch) (nProducts, nInvoices, nCustomers int, err error) {
	if len(b.Products) > 0 {
		ps := make([]*entity.Product, 0, len(b.Products))
		for _, rec := range b.Products {
			ps = append(ps, toProduct(rec))
		}
		nProducts, err = p.products.BulkInsert(ctx, ps)
		if err != nil {
			return nProducts, 0, 0, fmt.Errorf("%w: %s", common.ErrPersistenceFailed, err.Error())
		}
	}

	if len(b.Invoices) > 0 {
		invs := make([]*entity.Invoice, 0, len(b.Invoices))
		for _, rec := range b.Invoices {
			invs = append(invs, toInvoice(rec))
		}
		nInvoices, err = p.invoices.BulkInsert(ctx, invs)
		if err != nil {
			return nProducts, nInvoices, 0, fmt.Errorf("%w: %s", common.ErrPersistenceFailed, err.Error())
		}
	}

	if len(b.Customers) > 0 {
		cs := make([]*entity.Customer, 0, len(b.Customers))
		for _, rec := range b.Customers {
			cs = append(cs, toCustomer(rec))
		}
		nCustomers, err = p.customers.BulkInsert(ctx, cs)
		if err != nil {
			return nProducts, nInvoices, nCustomers, fmt.Errorf("%w: %s", common.ErrPersistenceFailed, err.Error())
		}
	}

	return nProducts, nInvoices, nCustomers, nil
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(f *float64) int {
	if f == nil {
		return 0
	}
	return int(*f)
}

func decVal(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}

func toProduct(rec extract.ProductRecord) *entity.Product {
	p := &entity.Product{
		Name:      strVal(rec.Name),
		Quantity:  intVal(rec.Quantity),
		UnitPrice: decVal(rec.UnitPrice),
		Tax:       decVal(rec.Tax),
	}
	if rec.PriceWithTax != nil {
		p.PriceWithTax = decVal(rec.PriceWithTax)
	} else {
		p.PriceWithTax = p.UnitPrice.Add(p.Tax)
	}
	return p
}

func toInvoice(rec extract.InvoiceRecord) *entity.Invoice {
	inv := &entity.Invoice{
		SerialNumber: strVal(rec.SerialNumber),
		CustomerName: strVal(rec.CustomerName),
		ProductName:  strVal(rec.ProductName),
		Quantity:     intVal(rec.Quantity),
		Tax:          decVal(rec.Tax),
		TotalAmount:  decVal(rec.TotalAmount),
	}
	if rec.Date != nil {
		inv.Date = parseInvoiceDate(*rec.Date)
	}
	return inv
}

func toCustomer(rec extract.CustomerRecord) *entity.Customer {
	return &entity.Customer{
		CustomerName:     strVal(rec.CustomerName),
		PhoneNumber:      strVal(rec.PhoneNumber),
		TotalPurchaseAmt: decVal(rec.TotalPurchaseAmt),
	}
}

// parseInvoiceDate accepts the ISO-8601 forms the prompt allows. A zero time
// is returned for anything else; the repository defaults it to now on insert.
func parseInvoiceDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
