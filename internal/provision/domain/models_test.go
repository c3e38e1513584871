package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReconcileOverBudget(t *testing.T) {
	provisions := []ProvisionBudget{
		{CategoryID: 1, CategoryName: "Catering", Provision: dec("1000")},
	}
	spent := map[snowflake.ID]CategorySpend{
		1: {CategoryName: "Catering", Spent: dec("1200")},
	}

	categories, totals := Reconcile(provisions, spent)
	require.Len(t, categories, 1)

	c := categories[0]
	assert.True(t, c.Available.Equal(dec("-200")), c.Available.String())
	assert.True(t, c.UtilizationPct.Equal(dec("120")), c.UtilizationPct.String())

	assert.True(t, totals.Available.Equal(dec("-200")))
	assert.True(t, totals.UtilizationPct.Equal(dec("120")))
}

func TestReconcileZeroProvisionUtilization(t *testing.T) {
	provisions := []ProvisionBudget{
		{CategoryID: 1, CategoryName: "Venue", Provision: decimal.Zero},
	}
	spent := map[snowflake.ID]CategorySpend{
		1: {CategoryName: "Venue", Spent: dec("300")},
	}

	categories, _ := Reconcile(provisions, spent)
	require.Len(t, categories, 1)
	assert.True(t, categories[0].UtilizationPct.IsZero())
	assert.True(t, categories[0].Available.Equal(dec("-300")))
}

func TestReconcileIncludesSpendWithoutProvision(t *testing.T) {
	provisions := []ProvisionBudget{
		{CategoryID: 1, CategoryName: "Catering", Provision: dec("500")},
	}
	spent := map[snowflake.ID]CategorySpend{
		1: {CategoryName: "Catering", Spent: dec("100")},
		2: {CategoryName: "Security", Spent: dec("250")},
	}

	categories, totals := Reconcile(provisions, spent)
	require.Len(t, categories, 2)

	// Ordered by name: Catering, Security.
	assert.Equal(t, "Security", categories[1].CategoryName)
	assert.True(t, categories[1].Provision.IsZero())
	assert.True(t, categories[1].Available.Equal(dec("-250")))

	assert.True(t, totals.Provision.Equal(dec("500")))
	assert.True(t, totals.Spent.Equal(dec("350")))
	assert.True(t, totals.Available.Equal(dec("150")))
	assert.True(t, totals.UtilizationPct.Equal(dec("70")))
}

func TestReconcileProvisionWithoutSpend(t *testing.T) {
	provisions := []ProvisionBudget{
		{CategoryID: 3, CategoryName: "Marketing", Provision: dec("400")},
	}

	categories, _ := Reconcile(provisions, nil)
	require.Len(t, categories, 1)
	assert.True(t, categories[0].Spent.IsZero())
	assert.True(t, categories[0].Available.Equal(dec("400")))
	assert.True(t, categories[0].UtilizationPct.IsZero())
}

func TestReconcileOrderedByName(t *testing.T) {
	provisions := []ProvisionBudget{
		{CategoryID: 2, CategoryName: "Venue", Provision: dec("1")},
		{CategoryID: 1, CategoryName: "Catering", Provision: dec("1")},
	}

	categories, _ := Reconcile(provisions, nil)
	require.Len(t, categories, 2)
	assert.Equal(t, "Catering", categories[0].CategoryName)
	assert.Equal(t, "Venue", categories[1].CategoryName)
}

func TestAutoAdjust(t *testing.T) {
	provisions := []ProvisionBudget{
		{CategoryID: 1, CategoryName: "Catering", Provision: dec("1000")},
		{CategoryID: 2, CategoryName: "Venue", Provision: dec("500")},
	}
	spent := map[snowflake.ID]CategorySpend{
		1: {CategoryName: "Catering", Spent: dec("1200")},
	}

	adjusted := AutoAdjust(provisions, spent, dec("10"))
	require.Len(t, adjusted, 2)

	assert.True(t, adjusted[0].Proposed.Equal(dec("1320")), adjusted[0].Proposed.String())
	// No spend proposes zero, regardless of the current provision.
	assert.True(t, adjusted[1].Proposed.IsZero())
}

func TestCompareProfit(t *testing.T) {
	p := CompareProfit(dec("2000"), dec("1500"), dec("1000"), dec("1200"))

	assert.True(t, p.EstimatedProfit.Equal(dec("1000")))
	assert.True(t, p.ActualProfit.Equal(dec("300")))
	assert.True(t, p.EstimatedMarginPct.Equal(dec("50")))
	assert.True(t, p.ActualMarginPct.Equal(dec("20")))
}

func TestCompareProfitZeroIncome(t *testing.T) {
	p := CompareProfit(decimal.Zero, decimal.Zero, dec("100"), dec("50"))

	assert.True(t, p.EstimatedProfit.Equal(dec("-100")))
	assert.True(t, p.EstimatedMarginPct.IsZero())
	assert.True(t, p.ActualMarginPct.IsZero())
}
