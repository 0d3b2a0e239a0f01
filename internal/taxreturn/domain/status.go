package domain

import "github.com/defterhane/defterhane/internal/lifecycle"

type ReturnStatus string

const (
	ReturnStatusDraft     ReturnStatus = "DRAFT"
	ReturnStatusSubmitted ReturnStatus = "SUBMITTED"
	ReturnStatusPaid      ReturnStatus = "PAID"
	ReturnStatusOverdue   ReturnStatus = "OVERDUE"
	ReturnStatusRejected  ReturnStatus = "REJECTED"
	ReturnStatusCancelled ReturnStatus = "CANCELLED"
)

// Transitions is the allowed status graph. PAID and CANCELLED are
// terminal.
var Transitions = lifecycle.Table[ReturnStatus]{
	ReturnStatusDraft:     {ReturnStatusSubmitted, ReturnStatusCancelled},
	ReturnStatusSubmitted: {ReturnStatusPaid, ReturnStatusOverdue, ReturnStatusRejected},
	ReturnStatusOverdue:   {ReturnStatusPaid, ReturnStatusCancelled},
	ReturnStatusRejected:  {ReturnStatusDraft, ReturnStatusCancelled},
	ReturnStatusPaid:      nil,
	ReturnStatusCancelled: nil,
}

func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusDraft, ReturnStatusSubmitted, ReturnStatusPaid,
		ReturnStatusOverdue, ReturnStatusRejected, ReturnStatusCancelled:
		return true
	}
	return false
}
