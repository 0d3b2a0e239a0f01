// Package rates holds the immutable tax rate tables. Tables are plain
// configuration data keyed by fiscal year and injected into the
// calculators; they carry no behavior beyond self-validation.
package rates

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one progressive income-tax band. Upper is zero on the last
// bracket, meaning unbounded.
type Bracket struct {
	Lower           decimal.Decimal
	Upper           decimal.Decimal
	Rate            decimal.Decimal
	CumulativeBelow decimal.Decimal
}

// Unbounded reports whether the bracket has no upper bound.
func (b Bracket) Unbounded() bool {
	return b.Upper.IsZero()
}

// WithholdingCategory keys the stopaj rate table.
type WithholdingCategory string

const (
	WithholdingWage       WithholdingCategory = "wage"
	WithholdingRent       WithholdingCategory = "rent"
	WithholdingFreelance  WithholdingCategory = "freelance"
	WithholdingSecurities WithholdingCategory = "securities"
	WithholdingDividend   WithholdingCategory = "dividend"
	WithholdingService    WithholdingCategory = "service"
	WithholdingBoardFee   WithholdingCategory = "board_fee"
)

// TaxType keys the flat declaration rates used by tax returns.
type TaxType string

const (
	TaxTypeVAT         TaxType = "vat"
	TaxTypeIncome      TaxType = "income"
	TaxTypeCorporate   TaxType = "corporate"
	TaxTypeWithholding TaxType = "withholding"
	TaxTypeStamp       TaxType = "stamp"
)

// VehicleClass keys the MTV tier tables.
type VehicleClass string

const (
	VehicleClassCar        VehicleClass = "car"
	VehicleClassMotorcycle VehicleClass = "motorcycle"
	VehicleClassMinibus    VehicleClass = "minibus"
)

// VehicleTier maps an engine-displacement band (inclusive upper bound in
// cc, zero = unbounded) to a base annual tax amount.
type VehicleTier struct {
	MaxDisplacement int
	Annual          decimal.Decimal
}

// EmployeeSGK holds the employee-side social security percentages, each
// applied independently to gross salary.
type EmployeeSGK struct {
	Retirement   decimal.Decimal
	Health       decimal.Decimal
	Unemployment decimal.Decimal
}

// Total is the summed employee contribution fraction.
func (e EmployeeSGK) Total() decimal.Decimal {
	return e.Retirement.Add(e.Health).Add(e.Unemployment)
}

// EmployerSGK holds the employer-side contribution percentages.
type EmployerSGK struct {
	Retirement   decimal.Decimal
	Health       decimal.Decimal
	ShortTerm    decimal.Decimal
	Unemployment decimal.Decimal
	Support      decimal.Decimal
}

// Total is the summed employer contribution fraction.
func (e EmployerSGK) Total() decimal.Decimal {
	return e.Retirement.Add(e.Health).Add(e.ShortTerm).Add(e.Unemployment).Add(e.Support)
}

// Tables is the full rate-table set for one fiscal year.
type Tables struct {
	Year int

	Brackets []Bracket

	// VATRates is the closed set of legal KDV fractions.
	VATRates []decimal.Decimal

	Withholding map[WithholdingCategory]decimal.Decimal

	EmployeeSGK EmployeeSGK
	EmployerSGK EmployerSGK

	CorporateRate decimal.Decimal
	StampRate     decimal.Decimal

	// ReturnRates are the flat declaration rates keyed by tax type.
	ReturnRates map[TaxType]decimal.Decimal

	Vehicle map[VehicleClass][]VehicleTier
	// VehicleAgeThreshold is the age in years above which the discount
	// multiplier applies.
	VehicleAgeThreshold int
	VehicleAgeDiscount  decimal.Decimal

	// LateAnnualRate is the default annual late-payment interest fraction.
	LateAnnualRate decimal.Decimal
}

var (
	ErrUnknownYear     = errors.New("unknown_rate_table_year")
	ErrEmptyBrackets   = errors.New("empty_bracket_table")
	ErrBracketOrder    = errors.New("brackets_not_contiguous")
	ErrBracketCumTax   = errors.New("bracket_cumulative_mismatch")
	ErrBracketUnbound  = errors.New("last_bracket_must_be_unbounded")
	ErrEmptyVehicleMap = errors.New("empty_vehicle_table")
)

// ForYear returns the rate tables for the given fiscal year.
func ForYear(year int) (*Tables, error) {
	switch year {
	case 2024:
		return tables2024(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
}

// Validate enforces the bracket invariants: contiguous, ascending,
// non-overlapping, last bracket unbounded, and CumulativeBelow of bracket
// i equal to the exact tax on income up to its lower bound.
func (t *Tables) Validate() error {
	if len(t.Brackets) == 0 {
		return ErrEmptyBrackets
	}
	if len(t.Vehicle) == 0 {
		return ErrEmptyVehicleMap
	}

	cum := decimal.Zero
	prevUpper := decimal.Zero
	for i, b := range t.Brackets {
		if !b.Lower.Equal(prevUpper) {
			return fmt.Errorf("%w: bracket %d lower %s != previous upper %s", ErrBracketOrder, i, b.Lower, prevUpper)
		}
		if !b.CumulativeBelow.Equal(cum) {
			return fmt.Errorf("%w: bracket %d has %s, want %s", ErrBracketCumTax, i, b.CumulativeBelow, cum)
		}
		last := i == len(t.Brackets)-1
		if last {
			if !b.Unbounded() {
				return ErrBracketUnbound
			}
			break
		}
		if b.Unbounded() || b.Upper.LessThanOrEqual(b.Lower) {
			return fmt.Errorf("%w: bracket %d upper %s", ErrBracketOrder, i, b.Upper)
		}
		cum = cum.Add(b.Upper.Sub(b.Lower).Mul(b.Rate))
		prevUpper = b.Upper
	}
	return nil
}

// VATAllowed reports whether the fraction is a legal KDV rate.
func (t *Tables) VATAllowed(rate decimal.Decimal) bool {
	for _, r := range t.VATRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}
