package domain

import (
	"context"

	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateReturnRequest struct {
	Type          rates.TaxType
	Period        string // "YYYY-MM"
	TaxableAmount decimal.Decimal
}

type TransitionRequest struct {
	ReturnID string
	Status   ReturnStatus
}

type GetReturnRequest struct {
	ID string
}

type ListReturnRequest struct {
	PageToken string
	PageSize  int
	Type      rates.TaxType
	Status    ReturnStatus
}

type ListReturnResponse struct {
	pagination.PageInfo
	Returns []TaxReturn `json:"returns"`
}

type Service interface {
	// Create derives the tax amount from the flat declaration rate for
	// the return's type.
	Create(context.Context, CreateReturnRequest) (TaxReturn, error)
	Transition(context.Context, TransitionRequest) (TaxReturn, error)
	GetByID(context.Context, GetReturnRequest) (TaxReturn, error)
	List(context.Context, ListReturnRequest) (ListReturnResponse, error)
	Delete(ctx context.Context, id string) error
}
