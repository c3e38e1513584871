package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	provisiondomain "github.com/smallbiznis/fincore/internal/provision/domain"
)

func (s *Server) CreateProvision(c *gin.Context) {
	var req provisiondomain.CreateProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")
	req.EventID = c.Param("event_id")

	provision, err := s.provisionSvc.CreateProvision(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, provision)
}

func (s *Server) GetReconciliation(c *gin.Context) {
	result, err := s.provisionSvc.Reconciliation(c.Request.Context(), provisiondomain.ReconciliationRequest{
		CompanyID: c.Param("company_id"),
		EventID:   c.Param("event_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReportGenerated("reconciliation")
	c.JSON(http.StatusOK, result)
}

func (s *Server) AdjustProvisions(c *gin.Context) {
	var req provisiondomain.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")
	req.EventID = c.Param("event_id")

	adjusted, err := s.provisionSvc.AdjustProvisions(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"provisions": adjusted})
}
