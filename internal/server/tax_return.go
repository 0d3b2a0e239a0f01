package server

import (
	"net/http"
	"strings"

	"github.com/defterhane/defterhane/internal/rates"
	taxreturndomain "github.com/defterhane/defterhane/internal/taxreturn/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Server) CreateTaxReturn(c *gin.Context) {
	var req struct {
		Type          string          `json:"type"`
		Period        string          `json:"period"`
		TaxableAmount decimal.Decimal `json:"taxable_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ret, err := s.taxReturnSvc.Create(c.Request.Context(), taxreturndomain.CreateReturnRequest{
		Type:          rates.TaxType(strings.ToLower(strings.TrimSpace(req.Type))),
		Period:        req.Period,
		TaxableAmount: req.TaxableAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ret})
}

func (s *Server) ListTaxReturns(c *gin.Context) {
	resp, err := s.taxReturnSvc.List(c.Request.Context(), taxreturndomain.ListReturnRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Type:      rates.TaxType(strings.ToLower(c.Query("type"))),
		Status:    taxreturndomain.ReturnStatus(strings.ToUpper(c.Query("status"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp.Returns, "page_info": resp.PageInfo})
}

func (s *Server) GetTaxReturnByID(c *gin.Context) {
	ret, err := s.taxReturnSvc.GetByID(c.Request.Context(), taxreturndomain.GetReturnRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ret})
}

func (s *Server) TransitionTaxReturn(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ret, err := s.taxReturnSvc.Transition(c.Request.Context(), taxreturndomain.TransitionRequest{
		ReturnID: strings.TrimSpace(c.Param("id")),
		Status:   taxreturndomain.ReturnStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ret})
}

func (s *Server) DeleteTaxReturn(c *gin.Context) {
	if err := s.taxReturnSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
