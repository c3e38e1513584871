package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ProvisionBudget is the budgeted ceiling for one spend category of an event.
type ProvisionBudget struct {
	ID           snowflake.ID    `gorm:"primaryKey"`
	CompanyID    snowflake.ID    `gorm:"not null;index"`
	EventID      snowflake.ID    `gorm:"not null;index;uniqueIndex:ux_provisions_event_category,priority:1"`
	CategoryID   snowflake.ID    `gorm:"not null;uniqueIndex:ux_provisions_event_category,priority:2"`
	CategoryName string          `gorm:"type:text;not null"`
	Provision    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ProvisionBudget) TableName() string { return "provision_budgets" }

// CategorySpend is the actual spend recorded against one category.
type CategorySpend struct {
	CategoryName string
	Spent        decimal.Decimal
}

// CategoryReconciliation compares one category's provision against its spend.
// Available may be negative: that is the over-budget signal, and it is not
// clamped here. Display-level clamping is a presentation concern.
type CategoryReconciliation struct {
	CategoryID     snowflake.ID    `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	Provision      decimal.Decimal `json:"provision"`
	Spent          decimal.Decimal `json:"spent"`
	Available      decimal.Decimal `json:"available"`
	UtilizationPct decimal.Decimal `json:"utilization_pct"`
}

// ProfitComparison sets estimated figures against actuals for the event.
type ProfitComparison struct {
	EstimatedIncome    decimal.Decimal `json:"estimated_income"`
	ActualIncome       decimal.Decimal `json:"actual_income"`
	ProvisionTotal     decimal.Decimal `json:"provision_total"`
	SpentTotal         decimal.Decimal `json:"spent_total"`
	EstimatedProfit    decimal.Decimal `json:"estimated_profit"`
	ActualProfit       decimal.Decimal `json:"actual_profit"`
	EstimatedMarginPct decimal.Decimal `json:"estimated_margin_pct"`
	ActualMarginPct    decimal.Decimal `json:"actual_margin_pct"`
}

// ReconciliationResult is the full budget-versus-actual picture of an event.
type ReconciliationResult struct {
	CompanyID  snowflake.ID             `json:"company_id"`
	EventID    snowflake.ID             `json:"event_id"`
	Categories []CategoryReconciliation `json:"categories"`
	Totals     CategoryReconciliation   `json:"totals"`
	Profit     ProfitComparison         `json:"profit"`
}

// AdjustedProvision is the previewed outcome of an automatic adjustment.
type AdjustedProvision struct {
	CategoryID   snowflake.ID    `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Current      decimal.Decimal `json:"current"`
	Spent        decimal.Decimal `json:"spent"`
	Proposed     decimal.Decimal `json:"proposed"`
}

func ratioPct(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimal.NewFromInt(100))
}

// Reconcile computes per-category and aggregate availability. Categories with
// spend but no provision still appear, with a zero provision, so over-budget
// spend cannot hide. Output is ordered by category name.
func Reconcile(provisions []ProvisionBudget, spent map[snowflake.ID]CategorySpend) ([]CategoryReconciliation, CategoryReconciliation) {
	categories := make([]CategoryReconciliation, 0, len(provisions))
	seen := make(map[snowflake.ID]struct{}, len(provisions))

	for _, p := range provisions {
		seen[p.CategoryID] = struct{}{}
		actual := spent[p.CategoryID].Spent
		categories = append(categories, CategoryReconciliation{
			CategoryID:     p.CategoryID,
			CategoryName:   p.CategoryName,
			Provision:      p.Provision,
			Spent:          actual,
			Available:      p.Provision.Sub(actual),
			UtilizationPct: ratioPct(actual, p.Provision),
		})
	}
	for categoryID, cs := range spent {
		if _, ok := seen[categoryID]; ok {
			continue
		}
		categories = append(categories, CategoryReconciliation{
			CategoryID:     categoryID,
			CategoryName:   cs.CategoryName,
			Provision:      decimal.Zero,
			Spent:          cs.Spent,
			Available:      cs.Spent.Neg(),
			UtilizationPct: decimal.Zero,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].CategoryName == categories[j].CategoryName {
			return categories[i].CategoryID < categories[j].CategoryID
		}
		return categories[i].CategoryName < categories[j].CategoryName
	})

	totals := CategoryReconciliation{CategoryName: "total"}
	for _, c := range categories {
		totals.Provision = totals.Provision.Add(c.Provision)
		totals.Spent = totals.Spent.Add(c.Spent)
	}
	totals.Available = totals.Provision.Sub(totals.Spent)
	totals.UtilizationPct = ratioPct(totals.Spent, totals.Provision)

	return categories, totals
}

// AutoAdjust proposes provision = spent * (1 + marginPct/100) per category.
// It is a pure transform so callers can preview before committing.
func AutoAdjust(provisions []ProvisionBudget, spent map[snowflake.ID]CategorySpend, marginPct decimal.Decimal) []AdjustedProvision {
	factor := decimal.NewFromInt(1).Add(marginPct.Div(decimal.NewFromInt(100)))
	adjusted := make([]AdjustedProvision, 0, len(provisions))
	for _, p := range provisions {
		actual := spent[p.CategoryID].Spent
		adjusted = append(adjusted, AdjustedProvision{
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			Current:      p.Provision,
			Spent:        actual,
			Proposed:     actual.Mul(factor),
		})
	}
	sort.Slice(adjusted, func(i, j int) bool {
		if adjusted[i].CategoryName == adjusted[j].CategoryName {
			return adjusted[i].CategoryID < adjusted[j].CategoryID
		}
		return adjusted[i].CategoryName < adjusted[j].CategoryName
	})
	return adjusted
}

// CompareProfit derives the estimated-versus-actual profit figures.
func CompareProfit(estimatedIncome, actualIncome, provisionTotal, spentTotal decimal.Decimal) ProfitComparison {
	estimatedProfit := estimatedIncome.Sub(provisionTotal)
	actualProfit := actualIncome.Sub(spentTotal)
	return ProfitComparison{
		EstimatedIncome:    estimatedIncome,
		ActualIncome:       actualIncome,
		ProvisionTotal:     provisionTotal,
		SpentTotal:         spentTotal,
		EstimatedProfit:    estimatedProfit,
		ActualProfit:       actualProfit,
		EstimatedMarginPct: ratioPct(estimatedProfit, estimatedIncome),
		ActualMarginPct:    ratioPct(actualProfit, actualIncome),
	}
}
