package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/internal/clock"
	finrecorddomain "github.com/smallbiznis/fincore/internal/finrecord/domain"
	finrecordrepo "github.com/smallbiznis/fincore/internal/finrecord/repository"
	"github.com/smallbiznis/fincore/internal/provision/domain"
	"github.com/smallbiznis/fincore/internal/provision/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testCompany = "1001"
	testEvent   = "2001"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ProvisionBudget{}, &finrecorddomain.FinancialRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:       repository.Provide(),
		RecordRepo: finrecordrepo.Provide(),
	})
	return svc, db, node
}

func insertExpense(t *testing.T, db *gorm.DB, node *snowflake.Node, categoryID int64, categoryName, total string, voided bool) {
	t.Helper()
	amount := dec(total)
	record := finrecorddomain.FinancialRecord{
		ID:            node.Generate(),
		CompanyID:     snowflake.ID(1001),
		EventID:       snowflake.ID(2001),
		Kind:          finrecorddomain.RecordKindExpense,
		CategoryID:    snowflake.ID(categoryID),
		CategoryName:  categoryName,
		Concept:       "expense",
		Subtotal:      amount,
		Tax:           decimal.Zero,
		Total:         amount,
		IssueDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ResponsibleID: snowflake.ID(4001),
		State:         finrecorddomain.StatePlanned,
		Voided:        voided,
	}
	require.NoError(t, db.Create(&record).Error)
}

func insertIncome(t *testing.T, db *gorm.DB, node *snowflake.Node, total string, paid bool) {
	t.Helper()
	amount := dec(total)
	record := finrecorddomain.FinancialRecord{
		ID:            node.Generate(),
		CompanyID:     snowflake.ID(1001),
		EventID:       snowflake.ID(2001),
		Kind:          finrecorddomain.RecordKindIncome,
		CategoryID:    snowflake.ID(9001),
		CategoryName:  "Tickets",
		Concept:       "income",
		Subtotal:      amount,
		Tax:           decimal.Zero,
		Total:         amount,
		IssueDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ResponsibleID: snowflake.ID(4001),
		State:         finrecorddomain.StatePlanned,
		Paid:          paid,
	}
	if paid {
		record.State = finrecorddomain.StatePaid
		record.Invoiced = true
	}
	require.NoError(t, db.Create(&record).Error)
}

func TestCreateProvision(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	provision, err := svc.CreateProvision(ctx, domain.CreateProvisionRequest{
		CompanyID:    testCompany,
		EventID:      testEvent,
		CategoryID:   "3001",
		CategoryName: "Catering",
		Provision:    dec("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Catering", provision.CategoryName)

	// Same category on the same event is rejected.
	_, err = svc.CreateProvision(ctx, domain.CreateProvisionRequest{
		CompanyID:    testCompany,
		EventID:      testEvent,
		CategoryID:   "3001",
		CategoryName: "Catering",
		Provision:    dec("500"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.CreateProvision(ctx, domain.CreateProvisionRequest{
		CompanyID:    testCompany,
		EventID:      testEvent,
		CategoryID:   "3002",
		CategoryName: "Venue",
		Provision:    dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProvision)
}

func TestReconciliationOverBudget(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProvision(ctx, domain.CreateProvisionRequest{
		CompanyID:    testCompany,
		EventID:      testEvent,
		CategoryID:   "3001",
		CategoryName: "Catering",
		Provision:    dec("1000"),
	})
	require.NoError(t, err)

	insertExpense(t, db, node, 3001, "Catering", "1200", false)
	// Voided spend does not count.
	insertExpense(t, db, node, 3001, "Catering", "5000", true)
	// Spend on a category nobody provisioned still shows up.
	insertExpense(t, db, node, 3002, "Security", "250", false)

	insertIncome(t, db, node, "2000", false)
	insertIncome(t, db, node, "1500", true)

	result, err := svc.Reconciliation(ctx, domain.ReconciliationRequest{CompanyID: testCompany, EventID: testEvent})
	require.NoError(t, err)
	require.Len(t, result.Categories, 2)

	catering := result.Categories[0]
	assert.Equal(t, "Catering", catering.CategoryName)
	assert.True(t, catering.Available.Equal(dec("-200")), catering.Available.String())
	assert.True(t, catering.UtilizationPct.Equal(dec("120")), catering.UtilizationPct.String())

	security := result.Categories[1]
	assert.Equal(t, "Security", security.CategoryName)
	assert.True(t, security.Provision.IsZero())
	assert.True(t, security.Available.Equal(dec("-250")))

	assert.True(t, result.Totals.Spent.Equal(dec("1450")))

	// Estimated income counts every non-voided income record; actual only the
	// paid ones.
	assert.True(t, result.Profit.EstimatedIncome.Equal(dec("3500")), result.Profit.EstimatedIncome.String())
	assert.True(t, result.Profit.ActualIncome.Equal(dec("1500")))
	assert.True(t, result.Profit.ActualProfit.Equal(dec("50")))
}

func TestAdjustProvisionsPreviewAndCommit(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProvision(ctx, domain.CreateProvisionRequest{
		CompanyID:    testCompany,
		EventID:      testEvent,
		CategoryID:   "3001",
		CategoryName: "Catering",
		Provision:    dec("1000"),
	})
	require.NoError(t, err)
	insertExpense(t, db, node, 3001, "Catering", "1200", false)

	// Preview leaves stored amounts alone.
	adjusted, err := svc.AdjustProvisions(ctx, domain.AdjustRequest{
		CompanyID: testCompany,
		EventID:   testEvent,
		MarginPct: dec("10"),
	})
	require.NoError(t, err)
	require.Len(t, adjusted, 1)
	assert.True(t, adjusted[0].Proposed.Equal(dec("1320")), adjusted[0].Proposed.String())

	result, err := svc.Reconciliation(ctx, domain.ReconciliationRequest{CompanyID: testCompany, EventID: testEvent})
	require.NoError(t, err)
	assert.True(t, result.Totals.Provision.Equal(dec("1000")))

	// Commit persists them.
	_, err = svc.AdjustProvisions(ctx, domain.AdjustRequest{
		CompanyID: testCompany,
		EventID:   testEvent,
		MarginPct: dec("10"),
		Commit:    true,
	})
	require.NoError(t, err)

	result, err = svc.Reconciliation(ctx, domain.ReconciliationRequest{CompanyID: testCompany, EventID: testEvent})
	require.NoError(t, err)
	assert.True(t, result.Totals.Provision.Equal(dec("1320")), result.Totals.Provision.String())
}

func TestAdjustProvisionsRejectsMarginBelowNeg100(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AdjustProvisions(context.Background(), domain.AdjustRequest{
		CompanyID: testCompany,
		EventID:   testEvent,
		MarginPct: dec("-150"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMargin)
}
