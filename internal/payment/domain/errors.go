package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOwner   = errors.New("invalid_owner")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidInvoice = errors.New("invalid_invoice")
	ErrNotFound       = errors.New("not_found")
)

// OverpaymentError is returned when a payment would push the sum of
// completed payments above the invoice total.
type OverpaymentError struct {
	RemainingPayable decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds invoice total, remaining payable %s", e.RemainingPayable)
}
