package domain

import (
	"errors"
	"fmt"

	"github.com/defterhane/defterhane/internal/rates"
)

var (
	ErrInvalidOwner  = errors.New("invalid_owner")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidType   = errors.New("invalid_type")
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("not_found")
)

// DuplicatePeriodError is returned when a return already exists for the
// owner, type and period.
type DuplicatePeriodError struct {
	Type   rates.TaxType
	Period string
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("tax return for %s %s already exists", e.Type, e.Period)
}
