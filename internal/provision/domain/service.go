package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	CreateProvision(ctx context.Context, req CreateProvisionRequest) (*ProvisionBudget, error)
	// Reconciliation compares every provision of the event against actual
	// spend and derives the profit comparison.
	Reconciliation(ctx context.Context, req ReconciliationRequest) (*ReconciliationResult, error)
	// AdjustProvisions previews the automatic adjustment; with Commit it also
	// persists the proposed amounts.
	AdjustProvisions(ctx context.Context, req AdjustRequest) ([]AdjustedProvision, error)
}

type CreateProvisionRequest struct {
	CompanyID    string          `json:"company_id"`
	EventID      string          `json:"event_id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Provision    decimal.Decimal `json:"provision"`
}

type ReconciliationRequest struct {
	CompanyID string
	EventID   string
}

type AdjustRequest struct {
	CompanyID string          `json:"company_id"`
	EventID   string          `json:"event_id"`
	MarginPct decimal.Decimal `json:"margin_pct"`
	Commit    bool            `json:"commit"`
}
