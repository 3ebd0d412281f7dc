package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer represents a customer record for data transfer between layers.
type Customer struct {
	ID               uuid.UUID       `json:"id"`
	CustomerName     string          `json:"customerName"`
	PhoneNumber      string          `json:"phoneNumber"`
	TotalPurchaseAmt decimal.Decimal `json:"totalPurchaseAmt"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
