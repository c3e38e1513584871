package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/internal/finrecord/domain"
	"github.com/smallbiznis/fincore/pkg/db/option"
	"github.com/smallbiznis/fincore/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.FinancialRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.FinancialRecord, error) {
	var record domain.FinancialRecord
	err := db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]*domain.FinancialRecord, error) {
	var records []*domain.FinancialRecord
	stmt := db.WithContext(ctx).
		Model(&domain.FinancialRecord{}).
		Where("company_id = ?", companyID)
	if filter.EventID != nil {
		stmt = stmt.Where("event_id = ?", *filter.EventID)
	}
	if filter.Kind != nil {
		stmt = stmt.Where("kind = ?", *filter.Kind)
	}
	if filter.CategoryID != nil {
		stmt = stmt.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.State != nil {
		stmt = stmt.Where("state = ?", *filter.State)
	}
	if filter.From != nil {
		stmt = stmt.Where("issue_date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("issue_date <= ?", *filter.To)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.FinancialRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *repo) SumByCategory(ctx context.Context, db *gorm.DB, companyID, eventID snowflake.ID, kind domain.RecordKind) ([]domain.CategoryTotal, error) {
	var totals []domain.CategoryTotal
	err := db.WithContext(ctx).
		Model(&domain.FinancialRecord{}).
		Select("category_id, category_name, COALESCE(SUM(total), 0) AS total").
		Where("company_id = ? AND event_id = ? AND kind = ? AND voided = ?", companyID, eventID, kind, false).
		Group("category_id, category_name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *repo) SumIncome(ctx context.Context, db *gorm.DB, companyID, eventID snowflake.ID, paidOnly bool) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	stmt := db.WithContext(ctx).
		Model(&domain.FinancialRecord{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("company_id = ? AND event_id = ? AND kind = ? AND voided = ?", companyID, eventID, domain.RecordKindIncome, false)
	if paidOnly {
		stmt = stmt.Where("paid = ?", true)
	}
	if err := stmt.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
