package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fincore/internal/posting/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertPoliza(ctx context.Context, db *gorm.DB, poliza *domain.Poliza, movements []domain.Movement) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poliza).Error; err != nil {
			return err
		}
		if len(movements) > 0 {
			if err := tx.Create(&movements).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) FindPoliza(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.Poliza, []domain.Movement, error) {
	var poliza domain.Poliza
	err := db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&poliza).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var movements []domain.Movement
	if err := db.WithContext(ctx).
		Where("poliza_id = ?", id).
		Order("id asc").
		Find(&movements).Error; err != nil {
		return nil, nil, err
	}
	return &poliza, movements, nil
}

func (r *repo) MarkApplied(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, appliedAt time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&domain.Poliza{}).
		Where("company_id = ? AND id = ? AND status = ?", companyID, id, domain.PolizaStatusDraft).
		Updates(map[string]any{
			"status":     domain.PolizaStatusApplied,
			"applied_at": appliedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) ListApplied(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start *time.Time, end time.Time) ([]domain.AppliedMovement, error) {
	var movements []domain.AppliedMovement
	stmt := db.WithContext(ctx).
		Table("movements").
		Select("movements.id AS movement_id, movements.account_id, polizas.date, movements.debit, movements.credit").
		Joins("JOIN polizas ON polizas.id = movements.poliza_id").
		Where("polizas.company_id = ? AND polizas.status = ?", companyID, domain.PolizaStatusApplied).
		Where("polizas.date <= ?", end)
	if start != nil {
		stmt = stmt.Where("polizas.date >= ?", *start)
	}
	err := stmt.Order("polizas.date asc, movements.id asc").Scan(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
