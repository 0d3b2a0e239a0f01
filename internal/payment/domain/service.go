package domain

import (
	"context"

	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	"github.com/defterhane/defterhane/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	InvoiceID string // optional, empty for standalone payments
	Amount    decimal.Decimal
	Method    string
}

type UpdatePaymentRequest struct {
	PaymentID string
	Amount    *decimal.Decimal
	Method    *string
}

type TransitionRequest struct {
	PaymentID string
	Status    PaymentStatus
}

type GetPaymentRequest struct {
	ID string
}

type ListPaymentRequest struct {
	PageToken string
	PageSize  int
	InvoiceID string
	Status    PaymentStatus
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

type Service interface {
	Create(context.Context, CreatePaymentRequest) (Payment, error)
	Update(context.Context, UpdatePaymentRequest) (Payment, error)
	// Transition applies a status change and, when the payment enters or
	// leaves COMPLETED, reconciles the owning invoice in the same
	// transaction.
	Transition(context.Context, TransitionRequest) (Payment, error)
	GetByID(context.Context, GetPaymentRequest) (Payment, error)
	List(context.Context, ListPaymentRequest) (ListPaymentResponse, error)
	Delete(ctx context.Context, id string) error
	// Reconcile recomputes the invoice status from its full payment
	// history and returns the derived status.
	Reconcile(ctx context.Context, invoiceID string) (invoicedomain.InvoiceStatus, error)
}
