package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, provision *ProvisionBudget) error
	ListByEvent(ctx context.Context, db *gorm.DB, companyID, eventID snowflake.ID) ([]ProvisionBudget, error)
	UpdateAmount(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, amount decimal.Decimal) error
}
