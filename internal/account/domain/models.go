package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// AccountType is the statement family an account belongs to.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountNature is the sign convention of an account: a debtor account grows
// with debits, a creditor account grows with credits.
type AccountNature string

const (
	AccountNatureDebtor   AccountNature = "debtor"
	AccountNatureCreditor AccountNature = "creditor"
)

// Account is a chart-of-accounts entry. Code is hierarchical ("1.1.01"); the
// code prefix drives statement classification.
type Account struct {
	ID             snowflake.ID    `gorm:"primaryKey"`
	CompanyID      snowflake.ID    `gorm:"not null;index;uniqueIndex:ux_accounts_company_code,priority:1"`
	Code           string          `gorm:"type:text;not null;uniqueIndex:ux_accounts_company_code,priority:2"`
	Name           string          `gorm:"type:text;not null"`
	Type           AccountType     `gorm:"type:text;not null"`
	Nature         AccountNature   `gorm:"type:text;not null"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }

func (a *Account) Validate() error {
	if a.CompanyID == 0 {
		return ErrInvalidCompany
	}
	if a.Code == "" {
		return ErrInvalidCode
	}
	if a.Name == "" {
		return ErrInvalidName
	}
	switch a.Type {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
	default:
		return ErrInvalidAccountType
	}
	switch a.Nature {
	case AccountNatureDebtor, AccountNatureCreditor:
	default:
		return ErrInvalidAccountNature
	}
	return nil
}
