package server

import (
	"net/http"
	"strings"
	"time"

	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/gin-gonic/gin"
)

type invoiceCreateRequest struct {
	CustomerID string                   `json:"customer_id"`
	Number     string                   `json:"number"`
	Currency   string                   `json:"currency"`
	IssueDate  *time.Time               `json:"issue_date"`
	DueDate    *time.Time               `json:"due_date"`
	Metadata   map[string]any           `json:"metadata"`
	Lines      []taxcalcdomain.LineItem `json:"lines"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID: req.CustomerID,
		Number:     req.Number,
		Currency:   req.Currency,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Metadata:   req.Metadata,
		Lines:      req.Lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": invoice})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Status:    invoicedomain.InvoiceStatus(strings.ToUpper(c.Query("status"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp.Invoices, "page_info": resp.PageInfo})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) ReplaceInvoiceLines(c *gin.Context) {
	var req struct {
		Lines []taxcalcdomain.LineItem `json:"lines"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.ReplaceLines(c.Request.Context(), invoicedomain.ReplaceLinesRequest{
		InvoiceID: strings.TrimSpace(c.Param("id")),
		Lines:     req.Lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) TransitionInvoice(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.Transition(c.Request.Context(), invoicedomain.TransitionRequest{
		InvoiceID: strings.TrimSpace(c.Param("id")),
		Status:    invoicedomain.InvoiceStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
