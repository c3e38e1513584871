package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Account, error)
	// ListActive returns the active accounts for a company, optionally
	// restricted to the given types, ordered by code.
	ListActive(ctx context.Context, db *gorm.DB, companyID snowflake.ID, types ...AccountType) ([]Account, error)
}
