package service

import (
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

// AddVAT computes vat = amount * rate and total = amount + vat.
func (s *Service) AddVAT(amount, rate decimal.Decimal) (domain.VATBreakdown, error) {
	if amount.Sign() < 0 {
		return domain.VATBreakdown{}, domain.ErrNegativeAmount
	}
	if !s.tables.VATAllowed(rate) {
		return domain.VATBreakdown{}, domain.ErrInvalidVATRate
	}
	s.metrics.RecordCalculation("vat_add")

	base := money.Round2(amount)
	vat := money.Round2(amount.Mul(rate))
	return domain.VATBreakdown{
		Base:  base,
		Rate:  rate,
		VAT:   vat,
		Total: money.Round2(base.Add(vat)),
	}, nil
}

// ExtractVAT splits a gross amount into base and vat. Inverse of AddVAT
// up to rounding.
func (s *Service) ExtractVAT(gross, rate decimal.Decimal) (domain.VATBreakdown, error) {
	if gross.Sign() < 0 {
		return domain.VATBreakdown{}, domain.ErrNegativeAmount
	}
	if !s.tables.VATAllowed(rate) {
		return domain.VATBreakdown{}, domain.ErrInvalidVATRate
	}
	s.metrics.RecordCalculation("vat_extract")

	base := money.Round2(gross.Div(decimal.NewFromInt(1).Add(rate)))
	return domain.VATBreakdown{
		Base:  base,
		Rate:  rate,
		VAT:   money.Round2(gross.Sub(base)),
		Total: money.Round2(gross),
	}, nil
}
