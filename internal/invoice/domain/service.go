package domain

import (
	"context"
	"time"

	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/db/pagination"
)

type CreateInvoiceRequest struct {
	CustomerID string
	Number     string
	Currency   string
	IssueDate  *time.Time
	DueDate    *time.Time
	Metadata   map[string]any
	Lines      []taxcalcdomain.LineItem
}

type ReplaceLinesRequest struct {
	InvoiceID string
	Lines     []taxcalcdomain.LineItem
}

type TransitionRequest struct {
	InvoiceID string
	Status    InvoiceStatus
}

type GetInvoiceRequest struct {
	ID string
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int
	Status    InvoiceStatus
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	ReplaceLines(context.Context, ReplaceLinesRequest) (Invoice, error)
	Transition(context.Context, TransitionRequest) (Invoice, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	Delete(ctx context.Context, id string) error
}
