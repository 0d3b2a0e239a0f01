package service

import (
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// LatePenalty accrues simple daily interest on an overdue principal.
// Negative daysOverdue is rejected rather than clamped; zero days yields
// a zero penalty. A nil annualRate falls back to the table default.
func (s *Service) LatePenalty(principal decimal.Decimal, daysOverdue int, annualRate *decimal.Decimal) (domain.LatePenaltyResult, error) {
	if principal.Sign() < 0 {
		return domain.LatePenaltyResult{}, domain.ErrNegativeAmount
	}
	if daysOverdue < 0 {
		return domain.LatePenaltyResult{}, domain.ErrNegativeDays
	}
	rate := s.tables.LateAnnualRate
	if annualRate != nil {
		if annualRate.Sign() < 0 {
			return domain.LatePenaltyResult{}, domain.ErrInvalidRate
		}
		rate = *annualRate
	}
	s.metrics.RecordCalculation("late_penalty")

	dailyRate := rate.Div(daysPerYear)
	penalty := money.Round2(principal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(daysOverdue))))
	return domain.LatePenaltyResult{
		Principal:  money.Round2(principal),
		Days:       daysOverdue,
		AnnualRate: rate,
		Penalty:    penalty,
		TotalOwed:  money.Round2(principal.Add(penalty)),
	}, nil
}
