package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertPoliza(ctx context.Context, db *gorm.DB, poliza *Poliza, movements []Movement) error
	FindPoliza(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Poliza, []Movement, error)
	MarkApplied(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, appliedAt time.Time) (bool, error)
	// ListApplied returns movements belonging to applied pólizas dated within
	// [start, end]; a nil start yields an as-of query (date <= end).
	ListApplied(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start *time.Time, end time.Time) ([]AppliedMovement, error)
}
