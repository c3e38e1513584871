package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*FinancialRecord, error)
	Get(ctx context.Context, companyID, id string) (*FinancialRecord, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Update(ctx context.Context, req UpdateRequest) (*FinancialRecord, error)
	// AttachArtifact sets an artifact reference, recomputes the derived state
	// and validates the persist preconditions before storing.
	AttachArtifact(ctx context.Context, req ArtifactRequest) (*FinancialRecord, error)
	DetachArtifact(ctx context.Context, companyID, id string, kind ArtifactKind) (*FinancialRecord, error)
	// State recomputes the lifecycle state from the stored artifacts without
	// persisting anything.
	State(ctx context.Context, companyID, id string) (*StateResponse, error)
	Void(ctx context.Context, companyID, id string) (*FinancialRecord, error)
	// CreateRefund creates a new negative-valued record referencing the
	// original; the original is never mutated.
	CreateRefund(ctx context.Context, req RefundRequest) (*FinancialRecord, error)
}

type CreateRequest struct {
	CompanyID    string          `json:"company_id"`
	EventID      string          `json:"event_id"`
	Kind         RecordKind      `json:"kind"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Concept      string          `json:"concept"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Responsible  string          `json:"responsible_id"`
}

type ListRequest struct {
	CompanyID  string
	Filter     ListFilter
	Pagination pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Records []*FinancialRecord `json:"records"`
}

type UpdateRequest struct {
	CompanyID       string     `json:"company_id"`
	ID              string     `json:"id"`
	Concept         *string    `json:"concept,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	LedgerAccountID *string    `json:"ledger_account_id,omitempty"`
}

type ArtifactRequest struct {
	CompanyID string       `json:"company_id"`
	ID        string       `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Ref       uuid.UUID    `json:"ref"`
}

type StateResponse struct {
	State    RecordState `json:"state"`
	Invoiced bool        `json:"invoiced"`
	Paid     bool        `json:"paid"`
}

type RefundRequest struct {
	CompanyID string `json:"company_id"`
	ID        string `json:"id"`
	Concept   string `json:"concept"`
}
