package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	EventID    *snowflake.ID
	Kind       *RecordKind
	CategoryID *snowflake.ID
	State      *RecordState
	From       *time.Time
	To         *time.Time
}

// CategoryTotal is the summed record total for one spend category.
type CategoryTotal struct {
	CategoryID   snowflake.ID
	CategoryName string
	Total        decimal.Decimal
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *FinancialRecord) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*FinancialRecord, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]*FinancialRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *FinancialRecord) error
	// SumByCategory sums non-voided record totals of one kind per category for
	// an event. Negative refund records subtract from their category total.
	SumByCategory(ctx context.Context, db *gorm.DB, companyID, eventID snowflake.ID, kind RecordKind) ([]CategoryTotal, error)
	// SumIncome totals non-voided income records of an event; with paidOnly
	// set, only records whose derived state reached paid contribute.
	SumIncome(ctx context.Context, db *gorm.DB, companyID, eventID snowflake.ID, paidOnly bool) (decimal.Decimal, error)
}
