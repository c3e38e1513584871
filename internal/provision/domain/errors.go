package domain

import "errors"

var (
	ErrInvalidCompany   = errors.New("invalid_company")
	ErrInvalidEvent     = errors.New("invalid_event")
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrInvalidProvision = errors.New("invalid_provision")
	ErrInvalidMargin    = errors.New("invalid_margin")
	ErrNotFound         = errors.New("not_found")
)
