package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	finrecorddomain "github.com/smallbiznis/fincore/internal/finrecord/domain"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
	provisiondomain "github.com/smallbiznis/fincore/internal/provision/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Code:    err.Error(),
		}
	case isConfigurationError(err):
		// Statement generation aborted: misconfigured accounts must surface,
		// never be defaulted away.
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "account_configuration_error",
			Message: "invalid account configuration",
			Code:    rootCode(err),
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, postingdomain.ErrAlreadyApplied),
		errors.Is(err, accountdomain.ErrDuplicateCode),
		errors.Is(err, finrecorddomain.ErrRecordVoided),
		errors.Is(err, finrecorddomain.ErrRefundOfRefund):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
			Code:    err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, accountdomain.ErrInvalidCompany),
		errors.Is(err, accountdomain.ErrInvalidCode),
		errors.Is(err, accountdomain.ErrInvalidName),
		errors.Is(err, accountdomain.ErrInvalidAccountType),
		errors.Is(err, accountdomain.ErrInvalidAccountNature),
		errors.Is(err, postingdomain.ErrInvalidCompany),
		errors.Is(err, postingdomain.ErrInvalidFolio),
		errors.Is(err, postingdomain.ErrInvalidDate),
		errors.Is(err, postingdomain.ErrInvalidAccount),
		errors.Is(err, postingdomain.ErrInvalidAmount),
		errors.Is(err, postingdomain.ErrInvalidMovements),
		errors.Is(err, postingdomain.ErrUnbalancedPoliza),
		errors.Is(err, ledgerdomain.ErrInvalidCompany),
		errors.Is(err, ledgerdomain.ErrInvalidPeriod),
		errors.Is(err, finrecorddomain.ErrInvalidCompany),
		errors.Is(err, finrecorddomain.ErrInvalidEvent),
		errors.Is(err, finrecorddomain.ErrInvalidKind),
		errors.Is(err, finrecorddomain.ErrInvalidCategory),
		errors.Is(err, finrecorddomain.ErrInvalidConcept),
		errors.Is(err, finrecorddomain.ErrInvalidAmount),
		errors.Is(err, finrecorddomain.ErrInvalidIssueDate),
		errors.Is(err, finrecorddomain.ErrInvalidResponsible),
		errors.Is(err, finrecorddomain.ErrInvalidArtifactKind),
		errors.Is(err, finrecorddomain.ErrInvalidArtifactRef),
		errors.Is(err, finrecorddomain.ErrMissingDueDate),
		errors.Is(err, finrecorddomain.ErrMissingPaymentDate),
		errors.Is(err, finrecorddomain.ErrMissingLedgerAccount),
		errors.Is(err, provisiondomain.ErrInvalidCompany),
		errors.Is(err, provisiondomain.ErrInvalidEvent),
		errors.Is(err, provisiondomain.ErrInvalidCategory),
		errors.Is(err, provisiondomain.ErrInvalidProvision),
		errors.Is(err, provisiondomain.ErrInvalidMargin):
		return true
	default:
		return false
	}
}

func isConfigurationError(err error) bool {
	switch {
	case errors.Is(err, ledgerdomain.ErrInvalidAccountType),
		errors.Is(err, ledgerdomain.ErrInvalidAccountNature),
		errors.Is(err, ledgerdomain.ErrEmptyChart),
		errors.Is(err, ledgerdomain.ErrInvalidChartRule),
		errors.Is(err, ledgerdomain.ErrAmbiguousChartRule):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, postingdomain.ErrNotFound),
		errors.Is(err, finrecorddomain.ErrNotFound),
		errors.Is(err, provisiondomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func rootCode(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
