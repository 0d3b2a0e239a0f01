package service_test

import (
	"testing"

	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVAT(t *testing.T) {
	calc := newCalc(t)

	result, err := calc.AddVAT(dec(t, "1000"), dec(t, "0.20"))
	require.NoError(t, err)
	assertDecimal(t, "1000.00", result.Base)
	assertDecimal(t, "200.00", result.VAT)
	assertDecimal(t, "1200.00", result.Total)

	result, err = calc.AddVAT(dec(t, "99.99"), dec(t, "0.01"))
	require.NoError(t, err)
	assertDecimal(t, "1.00", result.VAT)
	assertDecimal(t, "100.99", result.Total)
}

func TestAddVATRejectsInvalidInput(t *testing.T) {
	calc := newCalc(t)

	_, err := calc.AddVAT(dec(t, "-1"), dec(t, "0.20"))
	require.ErrorIs(t, err, taxcalcdomain.ErrNegativeAmount)

	_, err = calc.AddVAT(dec(t, "100"), dec(t, "0.18"))
	require.ErrorIs(t, err, taxcalcdomain.ErrInvalidVATRate)

	_, err = calc.AddVAT(dec(t, "100"), decimal.Zero)
	require.ErrorIs(t, err, taxcalcdomain.ErrInvalidVATRate)
}

func TestExtractVAT(t *testing.T) {
	calc := newCalc(t)

	result, err := calc.ExtractVAT(dec(t, "1200"), dec(t, "0.20"))
	require.NoError(t, err)
	assertDecimal(t, "1000.00", result.Base)
	assertDecimal(t, "200.00", result.VAT)
	assertDecimal(t, "1200.00", result.Total)
}

func TestVATRoundTrip(t *testing.T) {
	calc := newCalc(t)
	tolerance := dec(t, "0.01")

	amounts := []string{"0.01", "1", "99.99", "1234.56", "100000", "33333.33"}
	vatRates := []string{"0.01", "0.10", "0.20"}
	for _, amount := range amounts {
		for _, rate := range vatRates {
			added, err := calc.AddVAT(dec(t, amount), dec(t, rate))
			require.NoError(t, err)

			extracted, err := calc.ExtractVAT(added.Total, dec(t, rate))
			require.NoError(t, err)

			diff := extracted.Base.Sub(added.Base).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance),
				"round trip %s at %s drifted by %s", amount, rate, diff)
		}
	}
}
