package service_test

import (
	"testing"
	"time"

	"github.com/defterhane/defterhane/internal/rates"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleTaxTierLookup(t *testing.T) {
	calc := newCalc(t)
	currentYear := time.Now().UTC().Year()

	result, err := calc.VehicleTax(rates.VehicleClassCar, 1600, currentYear)
	require.NoError(t, err)
	assertDecimal(t, "6600.00", result.AnnualTax)
	assertDecimal(t, "3300.00", result.SemiAnnualInstallment)
	assert.False(t, result.AgeDiscountApplied)

	// above the last bounded tier falls into the unbounded one
	result, err = calc.VehicleTax(rates.VehicleClassCar, 5000, currentYear)
	require.NoError(t, err)
	assert.True(t, result.AnnualTax.GreaterThan(dec(t, "6600.00")))
}

func TestVehicleTaxAgeDiscount(t *testing.T) {
	calc := newCalc(t)
	currentYear := time.Now().UTC().Year()

	// exactly at the threshold: no discount
	atThreshold, err := calc.VehicleTax(rates.VehicleClassCar, 1600, currentYear-15)
	require.NoError(t, err)
	assert.False(t, atThreshold.AgeDiscountApplied)
	assertDecimal(t, "6600.00", atThreshold.AnnualTax)

	// one year past the threshold: halved
	pastThreshold, err := calc.VehicleTax(rates.VehicleClassCar, 1600, currentYear-16)
	require.NoError(t, err)
	assert.True(t, pastThreshold.AgeDiscountApplied)
	assertDecimal(t, "3300.00", pastThreshold.AnnualTax)
	assertDecimal(t, "1650.00", pastThreshold.SemiAnnualInstallment)
}

func TestVehicleTaxInvalidInput(t *testing.T) {
	calc := newCalc(t)
	currentYear := time.Now().UTC().Year()

	_, err := calc.VehicleTax(rates.VehicleClass("truck"), 1600, currentYear)
	require.ErrorIs(t, err, taxcalcdomain.ErrUnknownVehicle)

	_, err = calc.VehicleTax(rates.VehicleClassCar, 0, currentYear)
	require.ErrorIs(t, err, taxcalcdomain.ErrInvalidDisplacement)

	_, err = calc.VehicleTax(rates.VehicleClassCar, 1600, currentYear+1)
	require.ErrorIs(t, err, taxcalcdomain.ErrInvalidModelYear)

	_, err = calc.VehicleTax(rates.VehicleClassCar, 1600, 0)
	require.ErrorIs(t, err, taxcalcdomain.ErrInvalidModelYear)
}

func TestVehicleTaxInstallmentsSumToAnnual(t *testing.T) {
	calc := newCalc(t)
	currentYear := time.Now().UTC().Year()

	for _, class := range []rates.VehicleClass{rates.VehicleClassCar, rates.VehicleClassMotorcycle, rates.VehicleClassMinibus} {
		result, err := calc.VehicleTax(class, 1200, currentYear)
		require.NoError(t, err, "class %s", class)
		sum := result.SemiAnnualInstallment.Mul(dec(t, "2"))
		diff := sum.Sub(result.AnnualTax).Abs()
		assert.True(t, diff.LessThanOrEqual(dec(t, "0.01")),
			"class %s installments drift by %s", class, diff)
	}
}
