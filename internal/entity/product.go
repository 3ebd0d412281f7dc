package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product record for data transfer between layers.
// PriceWithTax is recomputed server-side as UnitPrice + Tax on every CRUD
// write; ingestion keeps the extracted value when the document carries one.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitprice"`
	Tax          decimal.Decimal `json:"tax"`
	PriceWithTax decimal.Decimal `json:"pricewithtax"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
