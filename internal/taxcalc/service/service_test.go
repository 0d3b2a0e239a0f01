package service_test

import (
	"testing"

	"github.com/defterhane/defterhane/internal/rates"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/internal/taxcalc/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCalc(t *testing.T) taxcalcdomain.Service {
	t.Helper()
	tables, err := rates.ForYear(2024)
	require.NoError(t, err)
	require.NoError(t, tables.Validate())
	return service.NewService(service.ServiceParam{
		Tables: tables,
		Log:    zap.NewNop(),
	})
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(t, want)), "want %s, got %s", want, got)
}
