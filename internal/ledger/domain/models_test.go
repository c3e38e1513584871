package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAggregateSignRules(t *testing.T) {
	cash := accountdomain.Account{ID: 1, Code: "1.1.01", Nature: accountdomain.AccountNatureDebtor}
	revenue := accountdomain.Account{ID: 2, Code: "4.1.01", Nature: accountdomain.AccountNatureCreditor}

	movements := []postingdomain.AppliedMovement{
		{AccountID: 1, Debit: dec("1000"), Credit: decimal.Zero},
		{AccountID: 2, Debit: decimal.Zero, Credit: dec("1000")},
	}

	balances, err := Aggregate([]accountdomain.Account{cash, revenue}, movements)
	require.NoError(t, err)

	// Debtor: debits increase the balance.
	assert.True(t, balances[1].Balance.Equal(dec("1000")), balances[1].Balance.String())
	// Creditor: credits increase the balance.
	assert.True(t, balances[2].Balance.Equal(dec("1000")), balances[2].Balance.String())

	assert.True(t, balances[1].Debit.Equal(dec("1000")))
	assert.True(t, balances[2].Credit.Equal(dec("1000")))
}

func TestAggregateOpeningBalances(t *testing.T) {
	cash := accountdomain.Account{
		ID: 1, Code: "1.1.01",
		Nature:         accountdomain.AccountNatureDebtor,
		OpeningBalance: dec("500"),
	}
	payable := accountdomain.Account{
		ID: 2, Code: "2.1.01",
		Nature:         accountdomain.AccountNatureCreditor,
		OpeningBalance: dec("200"),
	}

	movements := []postingdomain.AppliedMovement{
		{AccountID: 1, Debit: dec("100"), Credit: dec("30")},
		{AccountID: 2, Debit: dec("50"), Credit: dec("150")},
	}

	balances, err := Aggregate([]accountdomain.Account{cash, payable}, movements)
	require.NoError(t, err)

	// 500 + (100 - 30)
	assert.True(t, balances[1].Balance.Equal(dec("570")), balances[1].Balance.String())
	// 200 - (50 - 150)
	assert.True(t, balances[2].Balance.Equal(dec("300")), balances[2].Balance.String())
}

func TestAggregateAccountWithoutMovements(t *testing.T) {
	idle := accountdomain.Account{
		ID: 7, Code: "1.2.01",
		Nature:         accountdomain.AccountNatureDebtor,
		OpeningBalance: dec("42"),
	}

	balances, err := Aggregate([]accountdomain.Account{idle}, nil)
	require.NoError(t, err)

	balance, ok := balances[7]
	require.True(t, ok)
	assert.True(t, balance.Balance.Equal(dec("42")))
	assert.True(t, balance.Debit.IsZero())
	assert.True(t, balance.Credit.IsZero())
}

func TestAggregateSkipsUnknownAccounts(t *testing.T) {
	cash := accountdomain.Account{ID: 1, Code: "1.1.01", Nature: accountdomain.AccountNatureDebtor}

	movements := []postingdomain.AppliedMovement{
		{AccountID: 1, Debit: dec("10")},
		{AccountID: snowflake.ID(99), Debit: dec("1000000")},
	}

	balances, err := Aggregate([]accountdomain.Account{cash}, movements)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.True(t, balances[1].Balance.Equal(dec("10")))
}

func TestAggregateRejectsUnknownNature(t *testing.T) {
	broken := accountdomain.Account{ID: 1, Code: "1.1.01", Nature: "sideways"}

	_, err := Aggregate([]accountdomain.Account{broken}, nil)
	assert.ErrorIs(t, err, ErrInvalidAccountNature)
}
