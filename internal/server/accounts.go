package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
)

func (s *Server) ListAccounts(c *gin.Context) {
	req := accountdomain.ListRequest{
		CompanyID: c.Param("company_id"),
	}
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			req.Types = append(req.Types, accountdomain.AccountType(strings.TrimSpace(t)))
		}
	}

	accounts, err := s.accountSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (s *Server) CreateAccount(c *gin.Context) {
	var req accountdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")

	account, err := s.accountSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}
