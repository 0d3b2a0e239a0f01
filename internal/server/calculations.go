package server

import (
	"net/http"

	"github.com/defterhane/defterhane/internal/rates"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type vatRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
}

func (s *Server) CalculateAddVAT(c *gin.Context) {
	var req vatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.AddVAT(req.Amount, req.Rate)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateExtractVAT(c *gin.Context) {
	var req vatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.ExtractVAT(req.Amount, req.Rate)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateIncomeTax(c *gin.Context) {
	var req struct {
		AnnualIncome decimal.Decimal `json:"annual_income"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.IncomeTax(req.AnnualIncome)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateNetSalary(c *gin.Context) {
	var req struct {
		GrossSalary decimal.Decimal `json:"gross_salary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.NetSalary(req.GrossSalary)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateEmployerCost(c *gin.Context) {
	var req struct {
		GrossSalary decimal.Decimal `json:"gross_salary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.EmployerCost(req.GrossSalary)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateWithholding(c *gin.Context) {
	var req struct {
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.Withholding(req.Amount, rates.WithholdingCategory(req.Category))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateCorporateTax(c *gin.Context) {
	var req struct {
		Profit decimal.Decimal `json:"profit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.CorporateTax(req.Profit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateStampDuty(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.StampDuty(req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateVehicleTax(c *gin.Context) {
	var req struct {
		VehicleClass string `json:"vehicle_class"`
		Displacement int    `json:"displacement"`
		ModelYear    int    `json:"model_year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.VehicleTax(rates.VehicleClass(req.VehicleClass), req.Displacement, req.ModelYear)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateLatePenalty(c *gin.Context) {
	var req struct {
		Principal   decimal.Decimal  `json:"principal"`
		DaysOverdue int              `json:"days_overdue"`
		AnnualRate  *decimal.Decimal `json:"annual_rate,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.LatePenalty(req.Principal, req.DaysOverdue, req.AnnualRate)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CalculateInvoiceTotals(c *gin.Context) {
	var req struct {
		Items []taxcalcdomain.LineItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calcSvc.InvoiceTotals(req.Items)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
