// Package export produces XLSX workbooks from the stored record collections.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/nmercado/docledger/internal/entity"
)

// Lister interfaces are the read-only slice of the storage gateway the
// exporter needs; the pgx repositories satisfy them.

type ProductLister interface {
	List(ctx context.Context) ([]*entity.Product, error)
}

type CustomerLister interface {
	List(ctx context.Context) ([]*entity.Customer, error)
}

type InvoiceLister interface {
	List(ctx context.Context) ([]*entity.Invoice, error)
}

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	products  ProductLister
	customers CustomerLister
	invoices  InvoiceLister
	logger    zerolog.Logger
}

func NewService(products ProductLister, customers CustomerLister, invoices InvoiceLister, logger zerolog.Logger) *Service {
	return &Service{products: products, customers: customers, invoices: invoices, logger: logger}
}

// ExportRecordsXLSX returns a workbook with one sheet per record collection.
func (s *Service) ExportRecordsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()

	if err := s.writeProducts(f, products); err != nil {
		return nil, err
	}
	if err := s.writeCustomers(f, customers); err != nil {
		return nil, err
	}
	if err := s.writeInvoices(f, invoices); err != nil {
		return nil, err
	}

	// excelize starts every workbook with a default "Sheet1".
	_ = f.DeleteSheet("Sheet1")
	if idx, _ := f.GetSheetIndex("Products"); idx != -1 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Int("invoices", len(invoices)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("export.xlsx.ok")
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(name, cell, h)
	}
	return nil
}

func cellWriter(f *excelize.File, sheet string, row int) func(col int, v any) {
	return func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func (s *Service) writeProducts(f *excelize.File, products []*entity.Product) error {
	const sheet = "Products"
	headers := []string{"ID", "Name", "Quantity", "Unit Price", "Tax", "Price With Tax", "Created At"}
	if err := newSheet(f, sheet, headers); err != nil {
		return err
	}

	row := 2
	for _, p := range products {
		write := cellWriter(f, sheet, row)
		write(1, p.ID.String())
		write(2, p.Name)
		write(3, p.Quantity)
		write(4, p.UnitPrice.String())
		write(5, p.Tax.String())
		write(6, p.PriceWithTax.String())
		write(7, p.CreatedAt.Format("2006-01-02"))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 14)
	return nil
}

func (s *Service) writeCustomers(f *excelize.File, customers []*entity.Customer) error {
	const sheet = "Customers"
	headers := []string{"ID", "Customer Name", "Phone Number", "Total Purchase Amount", "Created At"}
	if err := newSheet(f, sheet, headers); err != nil {
		return err
	}

	row := 2
	for _, c := range customers {
		write := cellWriter(f, sheet, row)
		write(1, c.ID.String())
		write(2, c.CustomerName)
		write(3, c.PhoneNumber)
		write(4, c.TotalPurchaseAmt.String())
		write(5, c.CreatedAt.Format("2006-01-02"))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 18)
	_ = f.SetColWidth(sheet, "D", "E", 14)
	return nil
}

func (s *Service) writeInvoices(f *excelize.File, invoices []*entity.Invoice) error {
	const sheet = "Invoices"
	headers := []string{"ID", "Serial Number", "Customer Name", "Product Name", "Quantity", "Tax", "Total Amount", "Date"}
	if err := newSheet(f, sheet, headers); err != nil {
		return err
	}

	row := 2
	for _, inv := range invoices {
		write := cellWriter(f, sheet, row)
		write(1, inv.ID.String())
		write(2, inv.SerialNumber)
		write(3, inv.CustomerName)
		write(4, inv.ProductName)
		write(5, inv.Quantity)
		write(6, inv.Tax.String())
		write(7, inv.TotalAmount.String())
		if !inv.Date.IsZero() {
			write(8, inv.Date.Format("2006-01-02"))
		} else {
			write(8, "")
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "D", 24)
	_ = f.SetColWidth(sheet, "E", "G", 14)
	_ = f.SetColWidth(sheet, "H", "H", 14)
	return nil
}
