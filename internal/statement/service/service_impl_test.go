package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	accountrepo "github.com/smallbiznis/fincore/internal/account/repository"
	"github.com/smallbiznis/fincore/internal/clock"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
	ledgerservice "github.com/smallbiznis/fincore/internal/ledger/service"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
	postingrepo "github.com/smallbiznis/fincore/internal/posting/repository"
	postingservice "github.com/smallbiznis/fincore/internal/posting/service"
	"github.com/smallbiznis/fincore/internal/statement/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	accounts accountdomain.Repository
	postings postingdomain.Service
	svc      domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.Account{}, &postingdomain.Poliza{}, &postingdomain.Movement{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	accounts := accountrepo.Provide()
	postings := postingrepo.Provide()

	postingSvc := postingservice.New(postingservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  postings,
	})

	ledgerSvc := ledgerservice.NewService(ledgerservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		Chart:       ledgerdomain.DefaultChart(),
		AccountRepo: accounts,
		PostingRepo: postings,
	})

	svc := NewService(Params{
		Log:   zap.NewNop(),
		Clock: fake,
		Config: domain.Config{
			TaxRate: decimal.RequireFromString("0.30"),
			Epsilon: decimal.RequireFromString("0.01"),
		},
		Ledger: ledgerSvc,
	})

	return &fixture{db: db, node: node, accounts: accounts, postings: postingSvc, svc: svc}
}

func (f *fixture) account(t *testing.T, code, name string, typ accountdomain.AccountType, nature accountdomain.AccountNature) *accountdomain.Account {
	t.Helper()
	account := &accountdomain.Account{
		ID:        f.node.Generate(),
		CompanyID: snowflake.ID(1001),
		Code:      code,
		Name:      name,
		Type:      typ,
		Nature:    nature,
		Active:    true,
	}
	require.NoError(t, f.accounts.Insert(context.Background(), f.db, account))
	return account
}

func (f *fixture) post(t *testing.T, folio string, date time.Time, lines []postingdomain.MovementLineRequest) {
	t.Helper()
	poliza, err := f.postings.CreatePoliza(context.Background(), postingdomain.CreatePolizaRequest{
		CompanyID: "1001",
		Folio:     folio,
		Concept:   folio,
		Date:      date,
		Movements: lines,
	})
	require.NoError(t, err)
	_, err = f.postings.Apply(context.Background(), "1001", poliza.ID.String())
	require.NoError(t, err)
}

func TestStatementsFromSaleOfServices(t *testing.T) {
	f := newFixture(t)
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cash := f.account(t, "1.1.01", "Cash", accountdomain.AccountTypeAsset, accountdomain.AccountNatureDebtor)
	revenue := f.account(t, "4.1.01", "Sales Revenue", accountdomain.AccountTypeRevenue, accountdomain.AccountNatureCreditor)

	f.post(t, "P-0001", june, []postingdomain.MovementLineRequest{
		{AccountID: cash.ID.String(), Debit: decimal.RequireFromString("1000")},
		{AccountID: revenue.ID.String(), Credit: decimal.RequireFromString("1000")},
	})

	sheet, err := f.svc.BalanceSheet(context.Background(), domain.BalanceSheetRequest{CompanyID: "1001"})
	require.NoError(t, err)
	assert.True(t, sheet.AssetTotal.Equal(decimal.RequireFromString("1000")))
	// Revenue never lands on the balance sheet, so the sale alone leaves the
	// sheet unbalanced. That is reported, not thrown.
	assert.False(t, sheet.IsBalanced)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	stmt, err := f.svc.IncomeStatement(context.Background(), domain.IncomeStatementRequest{
		CompanyID: "1001",
		Start:     start,
		End:       end,
	})
	require.NoError(t, err)
	assert.True(t, stmt.RevenueNet.Equal(decimal.RequireFromString("1000")))
	assert.True(t, stmt.PreTaxProfit.Equal(decimal.RequireFromString("1000")))
	assert.True(t, stmt.Tax.Equal(decimal.RequireFromString("300")))
	assert.True(t, stmt.NetProfit.Equal(decimal.RequireFromString("700")))
}

func TestIncomeStatementWindowExcludesOutsideMovements(t *testing.T) {
	f := newFixture(t)

	cash := f.account(t, "1.1.01", "Cash", accountdomain.AccountTypeAsset, accountdomain.AccountNatureDebtor)
	revenue := f.account(t, "4.1.01", "Sales Revenue", accountdomain.AccountTypeRevenue, accountdomain.AccountNatureCreditor)

	f.post(t, "P-0001", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), []postingdomain.MovementLineRequest{
		{AccountID: cash.ID.String(), Debit: decimal.RequireFromString("400")},
		{AccountID: revenue.ID.String(), Credit: decimal.RequireFromString("400")},
	})
	f.post(t, "P-0002", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), []postingdomain.MovementLineRequest{
		{AccountID: cash.ID.String(), Debit: decimal.RequireFromString("600")},
		{AccountID: revenue.ID.String(), Credit: decimal.RequireFromString("600")},
	})

	stmt, err := f.svc.IncomeStatement(context.Background(), domain.IncomeStatementRequest{
		CompanyID: "1001",
		Start:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, stmt.RevenueNet.Equal(decimal.RequireFromString("600")), stmt.RevenueNet.String())
}

func TestBalanceSheetDefaultsAsOfToClock(t *testing.T) {
	f := newFixture(t)
	f.account(t, "1.1.01", "Cash", accountdomain.AccountTypeAsset, accountdomain.AccountNatureDebtor)

	sheet, err := f.svc.BalanceSheet(context.Background(), domain.BalanceSheetRequest{CompanyID: "1001"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), sheet.AsOf)
}

func TestIncomeStatementInvalidPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.IncomeStatement(context.Background(), domain.IncomeStatementRequest{
		CompanyID: "1001",
		Start:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ledgerdomain.ErrInvalidPeriod)
}
