// Package money holds the monetary rounding conventions shared by all
// calculators. Amounts are shopspring decimals rounded to 2 fractional
// digits at every derived-value boundary.
package money

import "github.com/shopspring/decimal"

// Round2 rounds half-up to 2 decimal places. Every derived monetary value
// is rounded independently at the point it is computed; intermediates
// inside a single formula keep full precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
