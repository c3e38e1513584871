package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
)

func (s *Server) CreatePoliza(c *gin.Context) {
	var req postingdomain.CreatePolizaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")

	poliza, err := s.postingSvc.CreatePoliza(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poliza)
}

func (s *Server) ApplyPoliza(c *gin.Context) {
	poliza, err := s.postingSvc.Apply(c.Request.Context(), c.Param("company_id"), c.Param("poliza_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, poliza)
}
