package service

import (
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// LineTotals derives the per-line amounts. Each derived value is rounded
// to 2 decimals independently.
func (s *Service) LineTotals(item domain.LineItem) (domain.LineTotals, error) {
	if item.Quantity.Sign() < 0 {
		return domain.LineTotals{}, domain.ErrNegativeQuantity
	}
	if item.UnitPrice.Sign() < 0 {
		return domain.LineTotals{}, domain.ErrNegativeAmount
	}
	if !s.tables.VATAllowed(item.VATRate) {
		return domain.LineTotals{}, domain.ErrInvalidVATRate
	}
	if item.DiscountRate.Sign() < 0 || item.DiscountRate.GreaterThan(one) {
		return domain.LineTotals{}, domain.ErrInvalidDiscount
	}

	subtotal := money.Round2(item.Quantity.Mul(item.UnitPrice))
	discount := money.Round2(subtotal.Mul(item.DiscountRate))
	base := money.Round2(subtotal.Sub(discount))
	vat := money.Round2(base.Mul(item.VATRate))

	return domain.LineTotals{
		LineItem:       item,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableBase:    base,
		VATAmount:      vat,
		Total:          money.Round2(base.Add(vat)),
	}, nil
}

// InvoiceTotals aggregates a full line set into invoice-level sums.
func (s *Service) InvoiceTotals(items []domain.LineItem) (domain.InvoiceTotals, error) {
	s.metrics.RecordCalculation("invoice_totals")

	totals := domain.InvoiceTotals{
		Items:         make([]domain.LineTotals, 0, len(items)),
		Subtotal:      decimal.Zero,
		VATTotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for _, item := range items {
		line, err := s.LineTotals(item)
		if err != nil {
			return domain.InvoiceTotals{}, err
		}
		totals.Items = append(totals.Items, line)
		totals.Subtotal = totals.Subtotal.Add(line.Subtotal)
		totals.VATTotal = totals.VATTotal.Add(line.VATAmount)
		totals.DiscountTotal = totals.DiscountTotal.Add(line.DiscountAmount)
		totals.GrandTotal = totals.GrandTotal.Add(line.Total)
	}
	totals.Subtotal = money.Round2(totals.Subtotal)
	totals.VATTotal = money.Round2(totals.VATTotal)
	totals.DiscountTotal = money.Round2(totals.DiscountTotal)
	totals.GrandTotal = money.Round2(totals.GrandTotal)
	return totals, nil
}
