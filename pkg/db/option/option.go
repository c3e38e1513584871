package option

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fincore/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm statement before execution.
type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// ApplyPagination clamps the page size and applies the cursor predicate. The
// limit is one row beyond the page size so the caller can detect has_more.
func ApplyPagination(page pagination.Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 50
		}
		if size > 250 {
			size = 250
		}
		stmt = stmt.Limit(size + 1)

		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err != nil || cursor == nil || cursor.CreatedAt == "" {
				return stmt
			}
			createdAt, err := time.Parse(time.RFC3339, cursor.CreatedAt)
			if err != nil {
				return stmt
			}
			if id, err := snowflake.ParseString(cursor.ID); err == nil && id != 0 {
				stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
			} else {
				stmt = stmt.Where("created_at < ?", createdAt)
			}
		}
		return stmt
	})
}
