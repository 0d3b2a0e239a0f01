package server

import (
	"net/http"
	"strings"

	customerdomain "github.com/defterhane/defterhane/internal/customer/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCustomer(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		TaxNumber string `json:"tax_number"`
		TaxOffice string `json:"tax_office"`
		Email     string `json:"email"`
		Address   string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:      req.Name,
		TaxNumber: req.TaxNumber,
		TaxOffice: req.TaxOffice,
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": customer})
}

func (s *Server) ListCustomers(c *gin.Context) {
	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Name:      c.Query("name"),
		TaxNumber: c.Query("tax_number"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp.Customers, "page_info": resp.PageInfo})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	customer, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req struct {
		Name      *string `json:"name"`
		TaxNumber *string `json:"tax_number"`
		TaxOffice *string `json:"tax_office"`
		Email     *string `json:"email"`
		Address   *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Update(c.Request.Context(), customerdomain.UpdateCustomerRequest{
		CustomerID: strings.TrimSpace(c.Param("id")),
		Name:       req.Name,
		TaxNumber:  req.TaxNumber,
		TaxOffice:  req.TaxOffice,
		Email:      req.Email,
		Address:    req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
