package domain

import (
	"context"
	"errors"

	"github.com/defterhane/defterhane/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name      string
	TaxNumber string
	TaxOffice string
	Email     string
	Address   string
}

type UpdateCustomerRequest struct {
	CustomerID string
	Name       *string
	TaxNumber  *string
	TaxOffice  *string
	Email      *string
	Address    *string
}

type GetCustomerRequest struct {
	ID string
}

type ListCustomerRequest struct {
	PageToken string
	PageSize  int
	Name      string
	TaxNumber string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
