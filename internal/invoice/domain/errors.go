package domain

import "errors"

var (
	ErrInvalidOwner    = errors.New("invalid_owner")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidNumber   = errors.New("invalid_number")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrNotFound        = errors.New("not_found")
)
