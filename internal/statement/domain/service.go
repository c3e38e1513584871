package domain

import (
	"context"
	"time"
)

type Service interface {
	// BalanceSheet builds the as-of statement. Statement generation aborts on
	// account configuration errors; an unbalanced ledger does not abort and is
	// reported via BalanceSheet.IsBalanced.
	BalanceSheet(ctx context.Context, req BalanceSheetRequest) (*BalanceSheet, error)
	IncomeStatement(ctx context.Context, req IncomeStatementRequest) (*IncomeStatement, error)
}

type BalanceSheetRequest struct {
	CompanyID string
	AsOf      time.Time
}

type IncomeStatementRequest struct {
	CompanyID string
	Start     time.Time
	End       time.Time
}
