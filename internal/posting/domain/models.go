package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PolizaStatus tracks whether a posting document has been applied to the
// ledger. Draft pólizas never contribute to balances.
type PolizaStatus string

const (
	PolizaStatusDraft   PolizaStatus = "draft"
	PolizaStatusApplied PolizaStatus = "applied"
)

// Poliza is an atomic, dated batch of movements. Once applied it is immutable;
// corrections are new pólizas, never edits.
type Poliza struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	CompanyID snowflake.ID `gorm:"not null;index"`
	Folio     string       `gorm:"type:text;not null"`
	Concept   string       `gorm:"type:text;not null"`
	Date      time.Time    `gorm:"not null;index"`
	Status    PolizaStatus `gorm:"type:text;not null;index"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	AppliedAt *time.Time
}

// TableName sets the database table name.
func (Poliza) TableName() string { return "polizas" }

// Movement is a single debit/credit line inside a póliza. Debit and credit are
// carried separately so aggregation never nets them per line.
type Movement struct {
	ID        snowflake.ID    `gorm:"primaryKey"`
	PolizaID  snowflake.ID    `gorm:"not null;index"`
	AccountID snowflake.ID    `gorm:"not null;index"`
	Concept   string          `gorm:"type:text"`
	Debit     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Credit    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Movement) TableName() string { return "movements" }

// AppliedMovement is a movement joined with its owning póliza's date, as
// consumed by the ledger aggregator.
type AppliedMovement struct {
	MovementID snowflake.ID    `json:"movement_id"`
	AccountID  snowflake.ID    `json:"account_id"`
	Date       time.Time       `json:"date"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
}

// ValidateBalanced reports whether the movements of a póliza debit and credit
// the same total amount.
func ValidateBalanced(movements []Movement) error {
	if len(movements) < 2 {
		return ErrInvalidMovements
	}
	debit := decimal.Zero
	credit := decimal.Zero
	for _, m := range movements {
		if m.Debit.IsNegative() || m.Credit.IsNegative() {
			return ErrInvalidAmount
		}
		debit = debit.Add(m.Debit)
		credit = credit.Add(m.Credit)
	}
	if !debit.Equal(credit) {
		return ErrUnbalancedPoliza
	}
	return nil
}
