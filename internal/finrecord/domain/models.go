package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordKind separates income from expense records.
type RecordKind string

const (
	RecordKindIncome  RecordKind = "income"
	RecordKindExpense RecordKind = "expense"
)

// RecordState is the derived document lifecycle state. It is recomputed from
// the currently attached artifacts on every write and is never set by hand.
type RecordState string

const (
	StatePlanned       RecordState = "planned"
	StatePurchaseOrder RecordState = "purchase_order"
	StateInvoiced      RecordState = "invoiced"
	StatePaid          RecordState = "paid"
)

var stateRank = map[RecordState]int{
	StatePlanned:       0,
	StatePurchaseOrder: 1,
	StateInvoiced:      2,
	StatePaid:          3,
}

// AtLeast reports whether s is as advanced as other in the lifecycle order.
func (s RecordState) AtLeast(other RecordState) bool {
	return stateRank[s] >= stateRank[other]
}

// ArtifactKind names the supporting documents whose presence drives the state.
type ArtifactKind string

const (
	ArtifactPurchaseOrder ArtifactKind = "purchase_order"
	ArtifactInvoiceDoc    ArtifactKind = "invoice_doc"
	ArtifactInvoiceProof  ArtifactKind = "invoice_proof"
	ArtifactPaymentProof  ArtifactKind = "payment_proof"
)

// Artifacts holds opaque references to uploaded documents. Upload and storage
// are external concerns; the engine only cares about presence.
type Artifacts struct {
	PurchaseOrderRef *uuid.UUID `json:"purchase_order_ref,omitempty"`
	// The invoice is a pair: the structured document plus the human-readable
	// proof. The pair counts as present only when both references are set.
	InvoiceDocRef   *uuid.UUID `json:"invoice_doc_ref,omitempty"`
	InvoiceProofRef *uuid.UUID `json:"invoice_proof_ref,omitempty"`
	PaymentProofRef *uuid.UUID `json:"payment_proof_ref,omitempty"`
}

func (a Artifacts) invoicePairPresent() bool {
	return a.InvoiceDocRef != nil && a.InvoiceProofRef != nil
}

// DeriveState computes the lifecycle state from the current artifact set. It
// is a total, idempotent function: the purchase order stage is skippable, and
// removing an artifact that a later stage does not require leaves the state
// unchanged because only the current set matters.
func DeriveState(a Artifacts) RecordState {
	switch {
	case a.invoicePairPresent() && a.PaymentProofRef != nil:
		return StatePaid
	case a.invoicePairPresent():
		return StateInvoiced
	case a.PurchaseOrderRef != nil:
		return StatePurchaseOrder
	default:
		return StatePlanned
	}
}

// FinancialRecord is an income or expense entry on an event. Amounts of a
// refund record are negative and reference the original via RefundOfID;
// originals are never mutated.
type FinancialRecord struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	CompanyID snowflake.ID `gorm:"not null;index"`
	EventID   snowflake.ID `gorm:"not null;index"`

	Kind         RecordKind   `gorm:"type:text;not null;index"`
	CategoryID   snowflake.ID `gorm:"not null;index"`
	CategoryName string       `gorm:"type:text;not null"`
	Concept      string       `gorm:"type:text;not null"`

	Subtotal decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Tax      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Total    decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	Artifacts Artifacts `gorm:"embedded"`

	IssueDate   time.Time  `gorm:"not null"`
	DueDate     *time.Time `gorm:"index"`
	PaymentDate *time.Time

	ResponsibleID   snowflake.ID  `gorm:"not null"`
	LedgerAccountID *snowflake.ID `gorm:"index"`

	// Derived from Artifacts on every write; stored only so lists can filter
	// without re-deriving in SQL.
	State    RecordState `gorm:"type:text;not null;index"`
	Invoiced bool        `gorm:"not null"`
	Paid     bool        `gorm:"not null"`

	Voided     bool          `gorm:"not null;default:false"`
	RefundOfID *snowflake.ID `gorm:"index"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (FinancialRecord) TableName() string { return "financial_records" }

// Recompute refreshes the derived state and flags from the current artifacts.
func (r *FinancialRecord) Recompute() {
	r.State = DeriveState(r.Artifacts)
	r.Invoiced = r.State.AtLeast(StateInvoiced)
	r.Paid = r.State.AtLeast(StatePaid)
}

// ValidatePersist checks the preconditions for persisting a record at the
// given derived state. The state itself is always computable; only the
// decision to store it is gated.
func ValidatePersist(r *FinancialRecord, state RecordState, requireLedgerAccount bool) error {
	if state.AtLeast(StateInvoiced) && r.DueDate == nil {
		return ErrMissingDueDate
	}
	if state.AtLeast(StatePaid) {
		if r.PaymentDate == nil {
			return ErrMissingPaymentDate
		}
		if requireLedgerAccount && r.LedgerAccountID == nil {
			return ErrMissingLedgerAccount
		}
	}
	return nil
}
