package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fincore/internal/account/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, companyID snowflake.ID, types ...domain.AccountType) ([]domain.Account, error) {
	var accounts []domain.Account
	stmt := db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("company_id = ? AND active = ?", companyID, true)
	if len(types) > 0 {
		stmt = stmt.Where("type IN ?", types)
	}
	err := stmt.Order("code asc").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
