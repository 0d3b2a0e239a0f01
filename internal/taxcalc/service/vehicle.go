package service

import (
	"time"

	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// VehicleTax looks up the MTV tier for (class, displacement), applies the
// age discount for vehicles older than the threshold and splits the
// annual amount into two equal semi-annual installments.
func (s *Service) VehicleTax(class rates.VehicleClass, displacement, modelYear int) (domain.VehicleTaxResult, error) {
	tiers, ok := s.tables.Vehicle[class]
	if !ok {
		return domain.VehicleTaxResult{}, domain.ErrUnknownVehicle
	}
	if displacement <= 0 {
		return domain.VehicleTaxResult{}, domain.ErrInvalidDisplacement
	}
	currentYear := time.Now().UTC().Year()
	if modelYear <= 0 || modelYear > currentYear {
		return domain.VehicleTaxResult{}, domain.ErrInvalidModelYear
	}
	s.metrics.RecordCalculation("vehicle_tax")

	annual := tiers[len(tiers)-1].Annual
	for _, tier := range tiers {
		if tier.MaxDisplacement != 0 && displacement <= tier.MaxDisplacement {
			annual = tier.Annual
			break
		}
	}

	discounted := false
	if currentYear-modelYear > s.tables.VehicleAgeThreshold {
		annual = money.Round2(annual.Mul(s.tables.VehicleAgeDiscount))
		discounted = true
	}

	return domain.VehicleTaxResult{
		Class:                 class,
		Displacement:          displacement,
		ModelYear:             modelYear,
		AnnualTax:             money.Round2(annual),
		SemiAnnualInstallment: money.Round2(annual.Div(two)),
		AgeDiscountApplied:    discounted,
	}, nil
}
