// Package domain contains the calculator result models. All amounts are
// decimals rounded to 2 fractional digits at the point they are derived.
package domain

import (
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/shopspring/decimal"
)

// VATBreakdown is the result of adding or extracting KDV.
type VATBreakdown struct {
	Base  decimal.Decimal `json:"base"`
	Rate  decimal.Decimal `json:"rate"`
	VAT   decimal.Decimal `json:"vat"`
	Total decimal.Decimal `json:"total"`
}

// BracketLine is one row of the income-tax audit breakdown.
type BracketLine struct {
	Lower decimal.Decimal `json:"lower"`
	Upper decimal.Decimal `json:"upper"` // zero when unbounded
	Rate  decimal.Decimal `json:"rate"`
	Taxed decimal.Decimal `json:"amount_taxed"`
	Tax   decimal.Decimal `json:"tax"`
}

// IncomeTaxResult is the progressive gelir vergisi outcome.
type IncomeTaxResult struct {
	Income        decimal.Decimal `json:"income"`
	Tax           decimal.Decimal `json:"tax"`
	NetIncome     decimal.Decimal `json:"net_income"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Breakdown     []BracketLine   `json:"breakdown"`
}

// SocialSecurityBreakdown names each employee-side SGK deduction.
type SocialSecurityBreakdown struct {
	Retirement   decimal.Decimal `json:"retirement"`
	Health       decimal.Decimal `json:"health"`
	Unemployment decimal.Decimal `json:"unemployment"`
	Total        decimal.Decimal `json:"total"`
}

// NetSalaryResult is the monthly payroll derivation.
type NetSalaryResult struct {
	Gross           decimal.Decimal         `json:"gross"`
	SocialSecurity  SocialSecurityBreakdown `json:"social_security"`
	IncomeTax       decimal.Decimal         `json:"income_tax"`
	StampDuty       decimal.Decimal         `json:"stamp_duty"`
	TotalDeductions decimal.Decimal         `json:"total_deductions"`
	NetSalary       decimal.Decimal         `json:"net_salary"`
	NetRatio        decimal.Decimal         `json:"net_ratio"`
}

// EmployerContributions names each employer-side SGK cost.
type EmployerContributions struct {
	Retirement   decimal.Decimal `json:"retirement"`
	Health       decimal.Decimal `json:"health"`
	ShortTerm    decimal.Decimal `json:"short_term"`
	Unemployment decimal.Decimal `json:"unemployment"`
	Support      decimal.Decimal `json:"support"`
	Total        decimal.Decimal `json:"total"`
}

// EmployerCostResult is the total cost of employment for one gross salary.
type EmployerCostResult struct {
	Gross         decimal.Decimal       `json:"gross"`
	Contributions EmployerContributions `json:"contributions"`
	TotalCost     decimal.Decimal       `json:"total_cost"`
	CostRatio     decimal.Decimal       `json:"cost_ratio"`
}

// WithholdingResult is the stopaj outcome for one income category.
type WithholdingResult struct {
	Amount decimal.Decimal           `json:"amount"`
	Rate   decimal.Decimal           `json:"rate"`
	Tax    decimal.Decimal           `json:"tax"`
	Net    decimal.Decimal           `json:"net"`
	Kind   rates.WithholdingCategory `json:"category"`
}

// CorporateTaxResult is the flat kurumlar vergisi outcome.
type CorporateTaxResult struct {
	Profit    decimal.Decimal `json:"profit"`
	Rate      decimal.Decimal `json:"rate"`
	Tax       decimal.Decimal `json:"tax"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// StampDutyResult is the damga vergisi on a document amount.
type StampDutyResult struct {
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
	Duty   decimal.Decimal `json:"duty"`
}

// VehicleTaxResult is the annual MTV for one vehicle.
type VehicleTaxResult struct {
	Class                 rates.VehicleClass `json:"vehicle_class"`
	Displacement          int                `json:"displacement"`
	ModelYear             int                `json:"model_year"`
	AnnualTax             decimal.Decimal    `json:"annual_tax"`
	SemiAnnualInstallment decimal.Decimal    `json:"semi_annual_installment"`
	AgeDiscountApplied    bool               `json:"age_discount_applied"`
}

// LatePenaltyResult is the simple-interest accrual on an overdue amount.
type LatePenaltyResult struct {
	Principal  decimal.Decimal `json:"principal"`
	Days       int             `json:"days_overdue"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	Penalty    decimal.Decimal `json:"penalty"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
}

// LineItem is one taxable invoice line as supplied by the caller.
type LineItem struct {
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// LineTotals carries the derived amounts for one line.
type LineTotals struct {
	LineItem
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableBase    decimal.Decimal `json:"taxable_base"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	Total          decimal.Decimal `json:"total"`
}

// InvoiceTotals aggregates a full line set.
type InvoiceTotals struct {
	Items         []LineTotals    `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATTotal      decimal.Decimal `json:"vat_total"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}
