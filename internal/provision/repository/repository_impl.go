package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/internal/provision/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, provision *domain.ProvisionBudget) error {
	return db.WithContext(ctx).Create(provision).Error
}

func (r *repo) ListByEvent(ctx context.Context, db *gorm.DB, companyID, eventID snowflake.ID) ([]domain.ProvisionBudget, error) {
	var provisions []domain.ProvisionBudget
	err := db.WithContext(ctx).
		Model(&domain.ProvisionBudget{}).
		Where("company_id = ? AND event_id = ?", companyID, eventID).
		Order("category_name asc").
		Find(&provisions).Error
	if err != nil {
		return nil, err
	}
	return provisions, nil
}

func (r *repo) UpdateAmount(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, amount decimal.Decimal) error {
	return db.WithContext(ctx).
		Model(&domain.ProvisionBudget{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(map[string]any{
			"provision":  amount,
			"updated_at": time.Now().UTC(),
		}).Error
}
