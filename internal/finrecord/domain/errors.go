package domain

import "errors"

var (
	ErrInvalidCompany       = errors.New("invalid_company")
	ErrInvalidEvent         = errors.New("invalid_event")
	ErrInvalidKind          = errors.New("invalid_record_kind")
	ErrInvalidCategory      = errors.New("invalid_category")
	ErrInvalidConcept       = errors.New("invalid_concept")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidIssueDate     = errors.New("invalid_issue_date")
	ErrInvalidResponsible   = errors.New("invalid_responsible")
	ErrInvalidArtifactKind  = errors.New("invalid_artifact_kind")
	ErrInvalidArtifactRef   = errors.New("invalid_artifact_ref")
	ErrMissingDueDate       = errors.New("missing_due_date")
	ErrMissingPaymentDate   = errors.New("missing_payment_date")
	ErrMissingLedgerAccount = errors.New("missing_ledger_account")
	ErrRecordVoided         = errors.New("record_voided")
	ErrRefundOfRefund       = errors.New("refund_of_refund")
	ErrNotFound             = errors.New("not_found")
)
