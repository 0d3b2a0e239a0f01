package service

import (
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

// Withholding applies the stopaj rate for the given income category.
func (s *Service) Withholding(amount decimal.Decimal, category rates.WithholdingCategory) (domain.WithholdingResult, error) {
	if amount.Sign() < 0 {
		return domain.WithholdingResult{}, domain.ErrNegativeAmount
	}
	rate, ok := s.tables.Withholding[category]
	if !ok {
		return domain.WithholdingResult{}, domain.ErrUnknownCategory
	}
	s.metrics.RecordCalculation("withholding")

	tax := money.Round2(amount.Mul(rate))
	return domain.WithholdingResult{
		Amount: money.Round2(amount),
		Rate:   rate,
		Tax:    tax,
		Net:    money.Round2(amount.Sub(tax)),
		Kind:   category,
	}, nil
}

// CorporateTax applies the flat kurumlar vergisi rate to profit.
func (s *Service) CorporateTax(profit decimal.Decimal) (domain.CorporateTaxResult, error) {
	if profit.Sign() < 0 {
		return domain.CorporateTaxResult{}, domain.ErrNegativeAmount
	}
	s.metrics.RecordCalculation("corporate_tax")

	tax := money.Round2(profit.Mul(s.tables.CorporateRate))
	return domain.CorporateTaxResult{
		Profit:    money.Round2(profit),
		Rate:      s.tables.CorporateRate,
		Tax:       tax,
		NetProfit: money.Round2(profit.Sub(tax)),
	}, nil
}

// StampDuty applies the flat damga vergisi rate to a document amount.
func (s *Service) StampDuty(documentAmount decimal.Decimal) (domain.StampDutyResult, error) {
	if documentAmount.Sign() < 0 {
		return domain.StampDutyResult{}, domain.ErrNegativeAmount
	}
	s.metrics.RecordCalculation("stamp_duty")

	return domain.StampDutyResult{
		Amount: money.Round2(documentAmount),
		Rate:   s.tables.StampRate,
		Duty:   money.Round2(documentAmount.Mul(s.tables.StampRate)),
	}, nil
}
