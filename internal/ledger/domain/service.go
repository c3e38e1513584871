package domain

import (
	"context"
	"time"
)

type Service interface {
	// TrialBalance aggregates applied movements for a company over the window.
	// A nil Start yields an as-of query (Balance Sheet); a Start bounds the
	// window for Income Statement use.
	TrialBalance(ctx context.Context, req TrialBalanceRequest) (*TrialBalance, error)
	// ActiveChart returns the validated chart of accounts rule set in use.
	ActiveChart() Chart
}

type TrialBalanceRequest struct {
	CompanyID string
	Start     *time.Time
	End       time.Time
}
