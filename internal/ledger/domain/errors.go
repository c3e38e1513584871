package domain

import "errors"

var (
	ErrInvalidCompany       = errors.New("invalid_company")
	ErrInvalidPeriod        = errors.New("invalid_period")
	ErrInvalidAccountType   = errors.New("invalid_account_type")
	ErrInvalidAccountNature = errors.New("invalid_account_nature")
	ErrEmptyChart           = errors.New("empty_chart")
	ErrInvalidChartRule     = errors.New("invalid_chart_rule")
	ErrAmbiguousChartRule   = errors.New("ambiguous_chart_rule")
)
