package service

import (
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// NetSalary derives the monthly net salary from gross: employee SGK
// withholding, income tax on the annualized base, and stamp duty.
//
// The income-tax step annualizes the monthly base (x12), runs it through
// the progressive schedule and divides by 12 again. This mirrors the
// upstream payroll behavior rather than literal cumulative monthly
// bracket withholding.
func (s *Service) NetSalary(grossMonthly decimal.Decimal) (domain.NetSalaryResult, error) {
	if grossMonthly.Sign() < 0 {
		return domain.NetSalaryResult{}, domain.ErrNegativeAmount
	}
	s.metrics.RecordCalculation("net_salary")

	sgk := s.tables.EmployeeSGK
	retirement := money.Round2(grossMonthly.Mul(sgk.Retirement))
	health := money.Round2(grossMonthly.Mul(sgk.Health))
	unemployment := money.Round2(grossMonthly.Mul(sgk.Unemployment))
	sgkTotal := money.Round2(retirement.Add(health).Add(unemployment))

	taxBase := grossMonthly.Sub(sgkTotal)
	annual, err := s.IncomeTax(taxBase.Mul(twelve))
	if err != nil {
		return domain.NetSalaryResult{}, err
	}
	incomeTax := money.Round2(annual.Tax.Div(twelve))

	stampDuty := money.Round2(grossMonthly.Mul(s.tables.StampRate))

	totalDeductions := money.Round2(sgkTotal.Add(incomeTax).Add(stampDuty))
	net := money.Round2(grossMonthly.Sub(totalDeductions))

	netRatio := decimal.Zero
	if grossMonthly.Sign() > 0 {
		netRatio = net.Div(grossMonthly).Round(4)
	}

	return domain.NetSalaryResult{
		Gross: money.Round2(grossMonthly),
		SocialSecurity: domain.SocialSecurityBreakdown{
			Retirement:   retirement,
			Health:       health,
			Unemployment: unemployment,
			Total:        sgkTotal,
		},
		IncomeTax:       incomeTax,
		StampDuty:       stampDuty,
		TotalDeductions: totalDeductions,
		NetSalary:       net,
		NetRatio:        netRatio,
	}, nil
}

// EmployerCost sums the employer-side SGK contributions on top of gross.
func (s *Service) EmployerCost(grossMonthly decimal.Decimal) (domain.EmployerCostResult, error) {
	if grossMonthly.Sign() < 0 {
		return domain.EmployerCostResult{}, domain.ErrNegativeAmount
	}
	s.metrics.RecordCalculation("employer_cost")

	sgk := s.tables.EmployerSGK
	retirement := money.Round2(grossMonthly.Mul(sgk.Retirement))
	health := money.Round2(grossMonthly.Mul(sgk.Health))
	shortTerm := money.Round2(grossMonthly.Mul(sgk.ShortTerm))
	unemployment := money.Round2(grossMonthly.Mul(sgk.Unemployment))
	support := money.Round2(grossMonthly.Mul(sgk.Support))
	total := money.Round2(retirement.Add(health).Add(shortTerm).Add(unemployment).Add(support))

	totalCost := money.Round2(grossMonthly.Add(total))
	costRatio := decimal.Zero
	if grossMonthly.Sign() > 0 {
		costRatio = totalCost.Div(grossMonthly).Round(4)
	}

	return domain.EmployerCostResult{
		Gross: money.Round2(grossMonthly),
		Contributions: domain.EmployerContributions{
			Retirement:   retirement,
			Health:       health,
			ShortTerm:    shortTerm,
			Unemployment: unemployment,
			Support:      support,
			Total:        total,
		},
		TotalCost: totalCost,
		CostRatio: costRatio,
	}, nil
}
