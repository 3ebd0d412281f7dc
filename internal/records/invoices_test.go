package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmercado/docledger/internal/entity"
)

type fakeInvoiceRepo struct {
	byID map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[uuid.UUID]*entity.Invoice{}}
}

func (f *fakeInvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(f.byID))
	for _, inv := range f.byID {
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return f.byID[id], nil
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	inv.ID = uuid.New()
	f.byID[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	if _, ok := f.byID[inv.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeInvoiceRepo) BulkInsert(_ context.Context, invs []*entity.Invoice) (int, error) {
	for _, inv := range invs {
		inv.ID = uuid.New()
		f.byID[inv.ID] = inv
	}
	return len(invs), nil
}

func TestInvoiceCreateDefaultsDate(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceRepo(), zerolog.Nop())

	res := svc.Create(context.Background(), InvoiceInput{
		SerialNumber: "INV-42",
		CustomerName: "Ana",
		TotalAmount:  dec("210"),
	})
	require.True(t, res.Success)
	inv := res.Data.(*entity.Invoice)
	assert.WithinDuration(t, time.Now().UTC(), inv.Date, time.Minute)
}

func TestInvoiceCreateKeepsGivenDate(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceRepo(), zerolog.Nop())

	given := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	res := svc.Create(context.Background(), InvoiceInput{SerialNumber: "INV-42", Date: &given})
	require.True(t, res.Success)
	assert.Equal(t, given, res.Data.(*entity.Invoice).Date)
}

func TestInvoiceUpdateMergePatch(t *testing.T) {
	repo := newFakeInvoiceRepo()
	svc := NewInvoiceService(repo, zerolog.Nop())

	created := svc.Create(context.Background(), InvoiceInput{
		SerialNumber: "INV-42",
		CustomerName: "Ana",
		Quantity:     2,
		TotalAmount:  dec("210"),
	})
	require.True(t, created.Success)
	id := created.Data.(*entity.Invoice).ID

	qty := 5
	res := svc.Update(context.Background(), id.String(), InvoicePatch{Quantity: &qty})
	require.True(t, res.Success)
	inv := res.Data.(*entity.Invoice)
	assert.Equal(t, 5, inv.Quantity)
	assert.Equal(t, "INV-42", inv.SerialNumber)
	assert.Equal(t, "Ana", inv.CustomerName)
}

func TestInvoiceGetEmptyAndUnknown(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceRepo(), zerolog.Nop())

	empty := svc.Get(context.Background(), "  ")
	assert.True(t, empty.Success)
	assert.Nil(t, empty.Data)

	missing := svc.Get(context.Background(), uuid.NewString())
	assert.False(t, missing.Success)
	assert.Equal(t, "invoice not found", missing.Error)
}

func TestInvoiceDeleteUnknownID(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceRepo(), zerolog.Nop())

	res := svc.Delete(context.Background(), uuid.NewString())
	assert.False(t, res.Success)
	assert.Equal(t, "error deleting invoice", res.Error)
}
