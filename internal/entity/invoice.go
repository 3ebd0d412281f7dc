package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice represents an invoice record for data transfer between layers.
// Customer and product references are denormalized name strings; no foreign
// keys are enforced at this layer.
type Invoice struct {
	ID           uuid.UUID       `json:"id"`
	SerialNumber string          `json:"serialNumber"`
	CustomerName string          `json:"customerName"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	Tax          decimal.Decimal `json:"tax"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
