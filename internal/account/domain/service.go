package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Account, error)
	List(ctx context.Context, req ListRequest) ([]Account, error)
}

type CreateRequest struct {
	CompanyID      string          `json:"company_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	Nature         AccountNature   `json:"nature"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type ListRequest struct {
	CompanyID string
	Types     []AccountType
}
