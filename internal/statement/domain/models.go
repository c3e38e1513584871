package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
)

// Config carries the jurisdiction-dependent knobs of statement generation.
// Neither value is hardcoded in the builders.
type Config struct {
	// TaxRate is the fraction applied to positive pre-tax profit (0.30 = 30%).
	TaxRate decimal.Decimal
	// Epsilon is the rounding tolerance for the balance cross-check.
	Epsilon decimal.Decimal
}

// BalanceSheet is the classified as-of statement. IsBalanced is a first-class
// output: an unbalanced ledger is reported as data, never thrown, so callers
// can render the statement with a warning.
type BalanceSheet struct {
	CompanyID snowflake.ID `json:"company_id"`
	AsOf      time.Time    `json:"as_of"`

	AssetCurrent  decimal.Decimal `json:"asset_current"`
	AssetFixed    decimal.Decimal `json:"asset_fixed"`
	AssetDeferred decimal.Decimal `json:"asset_deferred"`
	AssetTotal    decimal.Decimal `json:"asset_total"`

	LiabilityCurrent  decimal.Decimal `json:"liability_current"`
	LiabilityLongTerm decimal.Decimal `json:"liability_long_term"`
	LiabilityTotal    decimal.Decimal `json:"liability_total"`

	EquityTotal         decimal.Decimal `json:"equity_total"`
	LiabilityPlusEquity decimal.Decimal `json:"liability_plus_equity"`

	IsBalanced bool `json:"is_balanced"`
}

// IncomeStatement is the classified period statement. Each line depends only
// on previously computed lines.
type IncomeStatement struct {
	CompanyID   snowflake.ID `json:"company_id"`
	PeriodStart time.Time    `json:"period_start"`
	PeriodEnd   time.Time    `json:"period_end"`

	RevenueNet        decimal.Decimal `json:"revenue_net"`
	CostOfSales       decimal.Decimal `json:"cost_of_sales"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	OperatingProfit   decimal.Decimal `json:"operating_profit"`
	OtherIncome       decimal.Decimal `json:"other_income"`
	OtherExpenses     decimal.Decimal `json:"other_expenses"`
	PreTaxProfit      decimal.Decimal `json:"pre_tax_profit"`
	Tax               decimal.Decimal `json:"tax"`
	NetProfit         decimal.Decimal `json:"net_profit"`

	TaxRate        decimal.Decimal `json:"tax_rate"`
	GrossMarginPct decimal.Decimal `json:"gross_margin_pct"`
	NetMarginPct   decimal.Decimal `json:"net_margin_pct"`
}

// ratioPct returns num/den as a percentage, or zero when den is zero. Margins
// are displayed directly, so a zero denominator must never surface as NaN.
func ratioPct(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimal.NewFromInt(100))
}

// BuildBalanceSheet classifies aggregated balances into the balance sheet
// buckets and cross-checks assets against liabilities plus equity within
// cfg.Epsilon. Revenue and expense balances do not participate.
func BuildBalanceSheet(chart ledgerdomain.Chart, tb *ledgerdomain.TrialBalance, cfg Config) (*BalanceSheet, error) {
	sheet := &BalanceSheet{
		CompanyID: tb.CompanyID,
		AsOf:      tb.PeriodEnd,
	}

	for _, ab := range tb.Balances {
		bucket, err := chart.Classify(ab.Account)
		if err != nil {
			return nil, err
		}
		switch bucket {
		case ledgerdomain.BucketCurrentAsset:
			sheet.AssetCurrent = sheet.AssetCurrent.Add(ab.Balance)
		case ledgerdomain.BucketFixedAsset:
			sheet.AssetFixed = sheet.AssetFixed.Add(ab.Balance)
		case ledgerdomain.BucketDeferredAsset:
			sheet.AssetDeferred = sheet.AssetDeferred.Add(ab.Balance)
		case ledgerdomain.BucketCurrentLiability:
			sheet.LiabilityCurrent = sheet.LiabilityCurrent.Add(ab.Balance)
		case ledgerdomain.BucketLongTermLiability:
			sheet.LiabilityLongTerm = sheet.LiabilityLongTerm.Add(ab.Balance)
		case ledgerdomain.BucketEquity:
			sheet.EquityTotal = sheet.EquityTotal.Add(ab.Balance)
		}
	}

	sheet.AssetTotal = sheet.AssetCurrent.Add(sheet.AssetFixed).Add(sheet.AssetDeferred)
	sheet.LiabilityTotal = sheet.LiabilityCurrent.Add(sheet.LiabilityLongTerm)
	sheet.LiabilityPlusEquity = sheet.LiabilityTotal.Add(sheet.EquityTotal)
	sheet.IsBalanced = sheet.AssetTotal.Sub(sheet.LiabilityPlusEquity).Abs().LessThan(cfg.Epsilon)

	return sheet, nil
}

// BuildIncomeStatement classifies aggregated balances into the income
// statement lines. Cost buckets are debtor-natured, so their aggregated
// balances already carry the expense sign. Tax applies only to positive
// pre-tax profit.
func BuildIncomeStatement(chart ledgerdomain.Chart, tb *ledgerdomain.TrialBalance, cfg Config) (*IncomeStatement, error) {
	stmt := &IncomeStatement{
		CompanyID: tb.CompanyID,
		PeriodEnd: tb.PeriodEnd,
		TaxRate:   cfg.TaxRate,
	}
	if tb.PeriodStart != nil {
		stmt.PeriodStart = *tb.PeriodStart
	}

	for _, ab := range tb.Balances {
		bucket, err := chart.Classify(ab.Account)
		if err != nil {
			return nil, err
		}
		switch bucket {
		case ledgerdomain.BucketRevenueSales:
			stmt.RevenueNet = stmt.RevenueNet.Add(ab.Balance)
		case ledgerdomain.BucketCostOfSales:
			stmt.CostOfSales = stmt.CostOfSales.Add(ab.Balance)
		case ledgerdomain.BucketOperatingExpense:
			stmt.OperatingExpenses = stmt.OperatingExpenses.Add(ab.Balance)
		case ledgerdomain.BucketOtherIncome:
			stmt.OtherIncome = stmt.OtherIncome.Add(ab.Balance)
		case ledgerdomain.BucketOtherExpense:
			stmt.OtherExpenses = stmt.OtherExpenses.Add(ab.Balance)
		}
	}

	stmt.GrossProfit = stmt.RevenueNet.Sub(stmt.CostOfSales)
	stmt.OperatingProfit = stmt.GrossProfit.Sub(stmt.OperatingExpenses)
	stmt.PreTaxProfit = stmt.OperatingProfit.Add(stmt.OtherIncome).Sub(stmt.OtherExpenses)
	if stmt.PreTaxProfit.IsPositive() {
		stmt.Tax = stmt.PreTaxProfit.Mul(cfg.TaxRate)
	} else {
		stmt.Tax = decimal.Zero
	}
	stmt.NetProfit = stmt.PreTaxProfit.Sub(stmt.Tax)

	stmt.GrossMarginPct = ratioPct(stmt.GrossProfit, stmt.RevenueNet)
	stmt.NetMarginPct = ratioPct(stmt.NetProfit, stmt.RevenueNet)

	return stmt, nil
}
