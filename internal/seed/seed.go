package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	"gorm.io/gorm"
)

type seedAccount struct {
	Code   string
	Name   string
	Type   accountdomain.AccountType
	Nature accountdomain.AccountNature
}

// A minimal chart: one account per classification bucket, coded so the
// default prefix rules pick them up.
var defaultAccounts = []seedAccount{
	{Code: "1.1.01", Name: "Cash", Type: accountdomain.AccountTypeAsset, Nature: accountdomain.AccountNatureDebtor},
	{Code: "1.1.02", Name: "Accounts Receivable", Type: accountdomain.AccountTypeAsset, Nature: accountdomain.AccountNatureDebtor},
	{Code: "1.2.01", Name: "Equipment", Type: accountdomain.AccountTypeAsset, Nature: accountdomain.AccountNatureDebtor},
	{Code: "2.1.01", Name: "Accounts Payable", Type: accountdomain.AccountTypeLiability, Nature: accountdomain.AccountNatureCreditor},
	{Code: "2.2.01", Name: "Long Term Debt", Type: accountdomain.AccountTypeLiability, Nature: accountdomain.AccountNatureCreditor},
	{Code: "3.01", Name: "Capital", Type: accountdomain.AccountTypeEquity, Nature: accountdomain.AccountNatureCreditor},
	{Code: "4.1.01", Name: "Sales Revenue", Type: accountdomain.AccountTypeRevenue, Nature: accountdomain.AccountNatureCreditor},
	{Code: "5.1.01", Name: "Cost of Sales", Type: accountdomain.AccountTypeExpense, Nature: accountdomain.AccountNatureDebtor},
	{Code: "6.01", Name: "Operating Expenses", Type: accountdomain.AccountTypeExpense, Nature: accountdomain.AccountNatureDebtor},
	{Code: "7.01", Name: "Other Expenses", Type: accountdomain.AccountTypeExpense, Nature: accountdomain.AccountNatureDebtor},
}

// EnsureDefaultAccounts seeds the default chart of accounts for the bootstrap
// company. Existing codes are left untouched.
func EnsureDefaultAccounts(db *gorm.DB, companyID int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sa := range defaultAccounts {
			var existing accountdomain.Account
			err := tx.Where("company_id = ? AND code = ?", companyID, sa.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			account := accountdomain.Account{
				ID:        node.Generate(),
				CompanyID: snowflake.ID(companyID),
				Code:      sa.Code,
				Name:      sa.Name,
				Type:      sa.Type,
				Nature:    sa.Nature,
				Active:    true,
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
