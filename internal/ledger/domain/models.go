package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
)

// AccountBalance is the derived period balance of one account. Debit and
// credit are kept as independent sums for auditability; Balance is the signed
// net per the account's nature.
type AccountBalance struct {
	Account accountdomain.Account `json:"account"`
	Debit   decimal.Decimal       `json:"debit"`
	Credit  decimal.Decimal       `json:"credit"`
	Balance decimal.Decimal       `json:"balance"`
}

// TrialBalance is the aggregated, classified set of account balances feeding
// both financial statements.
type TrialBalance struct {
	CompanyID   snowflake.ID                    `json:"company_id"`
	PeriodStart *time.Time                      `json:"period_start,omitempty"`
	PeriodEnd   time.Time                       `json:"period_end"`
	Balances    map[snowflake.ID]AccountBalance `json:"balances"`
}

// Aggregate folds applied movements into per-account balances. Movements whose
// account is not in the supplied (active) set are skipped. Accounts without
// movements still appear, carrying only their opening balance.
//
// The signed balance is opening + (debit - credit) for debtor accounts and
// opening - (debit - credit) for creditor accounts.
func Aggregate(accounts []accountdomain.Account, movements []postingdomain.AppliedMovement) (map[snowflake.ID]AccountBalance, error) {
	byAccount := make(map[snowflake.ID]accountdomain.Account, len(accounts))
	for _, account := range accounts {
		byAccount[account.ID] = account
	}

	debits := make(map[snowflake.ID]decimal.Decimal, len(accounts))
	credits := make(map[snowflake.ID]decimal.Decimal, len(accounts))
	for _, movement := range movements {
		if _, ok := byAccount[movement.AccountID]; !ok {
			continue
		}
		debits[movement.AccountID] = debits[movement.AccountID].Add(movement.Debit)
		credits[movement.AccountID] = credits[movement.AccountID].Add(movement.Credit)
	}

	balances := make(map[snowflake.ID]AccountBalance, len(accounts))
	for _, account := range accounts {
		debit := debits[account.ID]
		credit := credits[account.ID]
		net := debit.Sub(credit)

		var balance decimal.Decimal
		switch account.Nature {
		case accountdomain.AccountNatureDebtor:
			balance = account.OpeningBalance.Add(net)
		case accountdomain.AccountNatureCreditor:
			balance = account.OpeningBalance.Sub(net)
		default:
			return nil, fmt.Errorf("%w: account %s has nature %q", ErrInvalidAccountNature, account.Code, account.Nature)
		}

		balances[account.ID] = AccountBalance{
			Account: account,
			Debit:   debit,
			Credit:  credit,
			Balance: balance,
		}
	}
	return balances, nil
}
