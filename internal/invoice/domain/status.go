package domain

import "github.com/defterhane/defterhane/internal/lifecycle"

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusAccepted  InvoiceStatus = "ACCEPTED"
	InvoiceStatusRejected  InvoiceStatus = "REJECTED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Transitions is the legal invoice status graph. PAID and CANCELLED are
// terminal.
var Transitions = lifecycle.Table[InvoiceStatus]{
	InvoiceStatusDraft:    {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:     {InvoiceStatusAccepted, InvoiceStatusRejected, InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusAccepted: {InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusRejected: {InvoiceStatusDraft, InvoiceStatusCancelled},
}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusAccepted,
		InvoiceStatusRejected, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}
