package service_test

import (
	"testing"

	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetSalaryKnownValue(t *testing.T) {
	calc := newCalc(t)

	result, err := calc.NetSalary(dec(t, "100000"))
	require.NoError(t, err)

	assertDecimal(t, "9000.00", result.SocialSecurity.Retirement)
	assertDecimal(t, "5000.00", result.SocialSecurity.Health)
	assertDecimal(t, "1000.00", result.SocialSecurity.Unemployment)
	assertDecimal(t, "15000.00", result.SocialSecurity.Total)

	// tax base 85000/month annualizes to 1020000
	assertDecimal(t, "24083.33", result.IncomeTax)
	assertDecimal(t, "759.00", result.StampDuty)
	assertDecimal(t, "39842.33", result.TotalDeductions)
	assertDecimal(t, "60157.67", result.NetSalary)
	assertDecimal(t, "0.6016", result.NetRatio)
}

func TestNetSalaryNeverExceedsGross(t *testing.T) {
	calc := newCalc(t)

	for _, gross := range []string{"0", "17002.12", "50000", "100000", "250000", "1000000"} {
		result, err := calc.NetSalary(dec(t, gross))
		require.NoError(t, err)
		assert.True(t, result.NetSalary.LessThanOrEqual(result.Gross),
			"net %s exceeds gross %s", result.NetSalary, result.Gross)
		assert.True(t, result.NetSalary.GreaterThanOrEqual(decimal.Zero))
	}
}

func TestNetSalaryZeroGross(t *testing.T) {
	calc := newCalc(t)

	result, err := calc.NetSalary(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, result.NetSalary.IsZero())
	assert.True(t, result.NetRatio.IsZero())
}

func TestNetSalaryNegativeGross(t *testing.T) {
	calc := newCalc(t)

	_, err := calc.NetSalary(dec(t, "-1"))
	require.ErrorIs(t, err, taxcalcdomain.ErrNegativeAmount)
}

func TestEmployerCostKnownValue(t *testing.T) {
	calc := newCalc(t)

	result, err := calc.EmployerCost(dec(t, "100000"))
	require.NoError(t, err)

	assertDecimal(t, "11000.00", result.Contributions.Retirement)
	assertDecimal(t, "7500.00", result.Contributions.Health)
	assertDecimal(t, "2250.00", result.Contributions.ShortTerm)
	assertDecimal(t, "2000.00", result.Contributions.Unemployment)
	assertDecimal(t, "750.00", result.Contributions.Support)
	assertDecimal(t, "23500.00", result.Contributions.Total)
	assertDecimal(t, "123500.00", result.TotalCost)
	assertDecimal(t, "1.235", result.CostRatio)
}

func TestEmployerCostAlwaysExceedsGross(t *testing.T) {
	calc := newCalc(t)

	result, err := calc.EmployerCost(dec(t, "54321.09"))
	require.NoError(t, err)
	assert.True(t, result.TotalCost.GreaterThan(result.Gross))
}
