package domain

import "errors"

var (
	ErrInvalidCompany   = errors.New("invalid_company")
	ErrInvalidFolio     = errors.New("invalid_folio")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidAccount   = errors.New("invalid_account")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidMovements = errors.New("invalid_movements")
	ErrUnbalancedPoliza = errors.New("unbalanced_poliza")
	ErrAlreadyApplied   = errors.New("poliza_already_applied")
	ErrNotFound         = errors.New("not_found")
)
