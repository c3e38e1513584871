package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	CreatePoliza(ctx context.Context, req CreatePolizaRequest) (*Poliza, error)
	// Apply flips a draft póliza to applied after validating that its
	// movements balance. Applying twice is a no-op error.
	Apply(ctx context.Context, companyID, polizaID string) (*Poliza, error)
}

type CreatePolizaRequest struct {
	CompanyID string                `json:"company_id"`
	Folio     string                `json:"folio"`
	Concept   string                `json:"concept"`
	Date      time.Time             `json:"date"`
	Movements []MovementLineRequest `json:"movements"`
}

type MovementLineRequest struct {
	AccountID string          `json:"account_id"`
	Concept   string          `json:"concept"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}
