package domain

import "errors"

var (
	ErrNegativeAmount      = errors.New("negative_amount")
	ErrNegativeIncome      = errors.New("negative_income")
	ErrNegativeQuantity    = errors.New("negative_quantity")
	ErrInvalidVATRate      = errors.New("invalid_vat_rate")
	ErrInvalidDiscount     = errors.New("invalid_discount_rate")
	ErrUnknownCategory     = errors.New("unknown_withholding_category")
	ErrUnknownVehicle      = errors.New("unknown_vehicle_class")
	ErrInvalidModelYear    = errors.New("invalid_model_year")
	ErrInvalidDisplacement = errors.New("invalid_displacement")
	ErrNegativeDays        = errors.New("negative_days_overdue")
	ErrInvalidRate         = errors.New("invalid_rate")
)
