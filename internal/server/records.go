package server

import (
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	finrecorddomain "github.com/smallbiznis/fincore/internal/finrecord/domain"
)

func (s *Server) ListRecords(c *gin.Context) {
	req := finrecorddomain.ListRequest{
		CompanyID: c.Param("company_id"),
	}

	if raw := c.Query("event_id"); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		req.Filter.EventID = &id
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		req.Filter.CategoryID = &id
	}
	if raw := c.Query("kind"); raw != "" {
		kind := finrecorddomain.RecordKind(raw)
		req.Filter.Kind = &kind
	}
	if raw := c.Query("state"); raw != "" {
		state := finrecorddomain.RecordState(raw)
		req.Filter.State = &state
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.Filter.From = from
	req.Filter.To = to

	req.Pagination.PageToken = c.Query("page_token")
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		req.Pagination.PageSize = size
	}

	resp, err := s.recordSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": resp.Records, "page_info": resp.PageInfo})
}

func (s *Server) CreateRecord(c *gin.Context) {
	var req finrecorddomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")

	record, err := s.recordSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) GetRecord(c *gin.Context) {
	record, err := s.recordSvc.Get(c.Request.Context(), c.Param("company_id"), c.Param("record_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) UpdateRecord(c *gin.Context) {
	var req finrecorddomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")
	req.ID = c.Param("record_id")

	record, err := s.recordSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) GetRecordState(c *gin.Context) {
	state, err := s.recordSvc.State(c.Request.Context(), c.Param("company_id"), c.Param("record_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (s *Server) AttachArtifact(c *gin.Context) {
	var req finrecorddomain.ArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")
	req.ID = c.Param("record_id")

	record, err := s.recordSvc.AttachArtifact(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) DetachArtifact(c *gin.Context) {
	kind := finrecorddomain.ArtifactKind(c.Param("kind"))

	record, err := s.recordSvc.DetachArtifact(c.Request.Context(), c.Param("company_id"), c.Param("record_id"), kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) VoidRecord(c *gin.Context) {
	record, err := s.recordSvc.Void(c.Request.Context(), c.Param("company_id"), c.Param("record_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) RefundRecord(c *gin.Context) {
	var req finrecorddomain.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.CompanyID = c.Param("company_id")
	req.ID = c.Param("record_id")

	refund, err := s.recordSvc.CreateRefund(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, refund)
}
