package service

import (
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

// IncomeTax runs annual taxable income through the progressive bracket
// schedule and returns the total tax with a per-bracket audit breakdown.
func (s *Service) IncomeTax(annualIncome decimal.Decimal) (domain.IncomeTaxResult, error) {
	if annualIncome.Sign() < 0 {
		return domain.IncomeTaxResult{}, domain.ErrNegativeIncome
	}
	s.metrics.RecordCalculation("income_tax")

	result := domain.IncomeTaxResult{
		Income:        money.Round2(annualIncome),
		Tax:           decimal.Zero,
		NetIncome:     money.Round2(annualIncome),
		EffectiveRate: decimal.Zero,
		Breakdown:     []domain.BracketLine{},
	}
	if annualIncome.Sign() == 0 {
		return result, nil
	}

	tax := decimal.Zero
	for _, b := range s.tables.Brackets {
		if b.Lower.GreaterThanOrEqual(annualIncome) {
			break
		}
		top := annualIncome
		if !b.Unbounded() && b.Upper.LessThan(top) {
			top = b.Upper
		}
		taxed := top.Sub(b.Lower)
		bracketTax := money.Round2(taxed.Mul(b.Rate))
		tax = tax.Add(bracketTax)

		result.Breakdown = append(result.Breakdown, domain.BracketLine{
			Lower: b.Lower,
			Upper: b.Upper,
			Rate:  b.Rate,
			Taxed: money.Round2(taxed),
			Tax:   bracketTax,
		})
	}

	result.Tax = money.Round2(tax)
	result.NetIncome = money.Round2(annualIncome.Sub(result.Tax))
	result.EffectiveRate = result.Tax.Div(annualIncome).Round(4)
	return result, nil
}
