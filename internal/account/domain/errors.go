package domain

import "errors"

var (
	ErrInvalidCompany       = errors.New("invalid_company")
	ErrInvalidCode          = errors.New("invalid_account_code")
	ErrInvalidName          = errors.New("invalid_account_name")
	ErrInvalidAccountType   = errors.New("invalid_account_type")
	ErrInvalidAccountNature = errors.New("invalid_account_nature")
	ErrDuplicateCode        = errors.New("duplicate_account_code")
	ErrNotFound             = errors.New("not_found")
)
