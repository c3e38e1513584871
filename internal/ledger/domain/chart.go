package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
)

// Bucket is a statement classification for an account balance.
type Bucket string

const (
	BucketCurrentAsset      Bucket = "current_asset"
	BucketFixedAsset        Bucket = "fixed_asset"
	BucketDeferredAsset     Bucket = "deferred_asset"
	BucketCurrentLiability  Bucket = "current_liability"
	BucketLongTermLiability Bucket = "long_term_liability"
	BucketEquity            Bucket = "equity"
	BucketRevenueSales      Bucket = "revenue_sales"
	BucketOtherIncome       Bucket = "other_income"
	BucketCostOfSales       Bucket = "cost_of_sales"
	BucketOperatingExpense  Bucket = "operating_expense"
	BucketOtherExpense      Bucket = "other_expense"
)

var knownBuckets = map[Bucket]struct{}{
	BucketCurrentAsset:      {},
	BucketFixedAsset:        {},
	BucketDeferredAsset:     {},
	BucketCurrentLiability:  {},
	BucketLongTermLiability: {},
	BucketEquity:            {},
	BucketRevenueSales:      {},
	BucketOtherIncome:       {},
	BucketCostOfSales:       {},
	BucketOperatingExpense:  {},
	BucketOtherExpense:      {},
}

// ChartRule maps an account-code prefix to a bucket. Prefixes are compared
// with "." separators stripped, so "1.1" and "11" describe the same rule.
type ChartRule struct {
	Prefix string `json:"prefix"`
	Bucket Bucket `json:"bucket"`
}

// Chart is a versioned set of classification rules. The chart is configuration,
// not code: alternate charts of accounts are supported by loading a different
// rule set.
type Chart struct {
	Version string      `json:"version"`
	Rules   []ChartRule `json:"rules"`
}

// DefaultChart returns the built-in rule set. Normalized prefixes:
// 11 current asset, 12 fixed asset, 13 deferred asset, 21 current liability,
// 22 long-term liability, 3 equity, 41 sales revenue, 51 cost of sales,
// 6 operating expense, 7 other expense.
func DefaultChart() Chart {
	return Chart{
		Version: "default-v1",
		Rules: []ChartRule{
			{Prefix: "1.1", Bucket: BucketCurrentAsset},
			{Prefix: "1.2", Bucket: BucketFixedAsset},
			{Prefix: "1.3", Bucket: BucketDeferredAsset},
			{Prefix: "2.1", Bucket: BucketCurrentLiability},
			{Prefix: "2.2", Bucket: BucketLongTermLiability},
			{Prefix: "3", Bucket: BucketEquity},
			{Prefix: "4.1", Bucket: BucketRevenueSales},
			{Prefix: "5.1", Bucket: BucketCostOfSales},
			{Prefix: "6", Bucket: BucketOperatingExpense},
			{Prefix: "7", Bucket: BucketOtherExpense},
		},
	}
}

// LoadChartFile reads a chart rule set from a JSON file and validates it.
func LoadChartFile(path string) (Chart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("read chart file: %w", err)
	}
	var chart Chart
	if err := json.Unmarshal(raw, &chart); err != nil {
		return Chart{}, fmt.Errorf("parse chart file: %w", err)
	}
	if err := chart.Validate(); err != nil {
		return Chart{}, err
	}
	return chart, nil
}

func normalizePrefix(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), ".", "")
}

// Validate rejects empty or duplicate prefixes and unknown buckets. Two rules
// with the same normalized prefix would make classification ambiguous, so the
// chart is refused at load time rather than resolved arbitrarily.
func (c Chart) Validate() error {
	if len(c.Rules) == 0 {
		return ErrEmptyChart
	}
	seen := make(map[string]struct{}, len(c.Rules))
	for _, rule := range c.Rules {
		prefix := normalizePrefix(rule.Prefix)
		if prefix == "" {
			return fmt.Errorf("%w: empty prefix", ErrInvalidChartRule)
		}
		if _, ok := knownBuckets[rule.Bucket]; !ok {
			return fmt.Errorf("%w: prefix %q maps to unknown bucket %q", ErrInvalidChartRule, rule.Prefix, rule.Bucket)
		}
		if _, dup := seen[prefix]; dup {
			return fmt.Errorf("%w: prefix %q", ErrAmbiguousChartRule, rule.Prefix)
		}
		seen[prefix] = struct{}{}
	}
	return nil
}

// typeFallbacks assigns a bucket to accounts no prefix rule matches.
var typeFallbacks = map[accountdomain.AccountType]Bucket{
	accountdomain.AccountTypeAsset:     BucketCurrentAsset,
	accountdomain.AccountTypeLiability: BucketCurrentLiability,
	accountdomain.AccountTypeEquity:    BucketEquity,
	accountdomain.AccountTypeRevenue:   BucketOtherIncome,
	accountdomain.AccountTypeExpense:   BucketOtherExpense,
}

// Classify maps an account to its statement bucket. The longest matching
// normalized prefix wins. Unmatched asset and liability codes fall back to the
// current bucket; unmatched revenue and expense codes fall back to the other
// income/expense buckets. An unrecognized account type is a configuration
// error that must abort statement generation even when a prefix rule matches
// the code.
func (c Chart) Classify(account accountdomain.Account) (Bucket, error) {
	fallback, ok := typeFallbacks[account.Type]
	if !ok {
		return "", fmt.Errorf("%w: account %s has type %q", ErrInvalidAccountType, account.Code, account.Type)
	}

	code := normalizePrefix(account.Code)

	best := ""
	var bucket Bucket
	for _, rule := range c.Rules {
		prefix := normalizePrefix(rule.Prefix)
		if strings.HasPrefix(code, prefix) && len(prefix) > len(best) {
			best = prefix
			bucket = rule.Bucket
		}
	}
	if best != "" {
		return bucket, nil
	}
	return fallback, nil
}
