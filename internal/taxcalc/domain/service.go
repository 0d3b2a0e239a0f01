package domain

import (
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/shopspring/decimal"
)

// Service is the stateless calculation engine. Every operation is pure
// and safe for concurrent use.
type Service interface {
	AddVAT(amount, rate decimal.Decimal) (VATBreakdown, error)
	ExtractVAT(gross, rate decimal.Decimal) (VATBreakdown, error)

	IncomeTax(annualIncome decimal.Decimal) (IncomeTaxResult, error)
	NetSalary(grossMonthly decimal.Decimal) (NetSalaryResult, error)
	EmployerCost(grossMonthly decimal.Decimal) (EmployerCostResult, error)

	Withholding(amount decimal.Decimal, category rates.WithholdingCategory) (WithholdingResult, error)
	CorporateTax(profit decimal.Decimal) (CorporateTaxResult, error)
	StampDuty(documentAmount decimal.Decimal) (StampDutyResult, error)
	VehicleTax(class rates.VehicleClass, displacement, modelYear int) (VehicleTaxResult, error)
	LatePenalty(principal decimal.Decimal, daysOverdue int, annualRate *decimal.Decimal) (LatePenaltyResult, error)

	InvoiceTotals(items []LineItem) (InvoiceTotals, error)
}
