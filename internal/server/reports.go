package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/fincore/internal/ledger/domain"
	statementdomain "github.com/smallbiznis/fincore/internal/statement/domain"
)

// parseTimeQuery accepts RFC 3339 timestamps or bare dates.
func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return &t, nil
}

func (s *Server) GetTrialBalance(c *gin.Context) {
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if end == nil {
		// as_of is accepted as an alias for end on as-of queries.
		end, err = parseTimeQuery(c, "as_of")
		if err != nil {
			AbortWithError(c, err)
			return
		}
	}

	req := ledgerdomain.TrialBalanceRequest{
		CompanyID: c.Param("company_id"),
		Start:     start,
	}
	if end != nil {
		req.End = *end
	} else {
		req.End = time.Now().UTC()
	}

	tb, err := s.ledgerSvc.TrialBalance(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReportGenerated("trial_balance")
	c.JSON(http.StatusOK, tb)
}

func (s *Server) GetBalanceSheet(c *gin.Context) {
	asOf, err := parseTimeQuery(c, "as_of")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	req := statementdomain.BalanceSheetRequest{
		CompanyID: c.Param("company_id"),
	}
	if asOf != nil {
		req.AsOf = *asOf
	}

	sheet, err := s.statementSvc.BalanceSheet(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReportGenerated("balance_sheet")
	if !sheet.IsBalanced {
		s.metrics.UnbalancedSheet()
	}
	c.JSON(http.StatusOK, sheet)
}

func (s *Server) GetIncomeStatement(c *gin.Context) {
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if start == nil || end == nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	stmt, err := s.statementSvc.IncomeStatement(c.Request.Context(), statementdomain.IncomeStatementRequest{
		CompanyID: c.Param("company_id"),
		Start:     *start,
		End:       *end,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReportGenerated("income_statement")
	c.JSON(http.StatusOK, stmt)
}
