package server

import (
	"errors"
	"net/http"

	customerdomain "github.com/defterhane/defterhane/internal/customer/domain"
	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	"github.com/defterhane/defterhane/internal/lifecycle"
	paymentdomain "github.com/defterhane/defterhane/internal/payment/domain"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	taxreturndomain "github.com/defterhane/defterhane/internal/taxreturn/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type             string            `json:"type"`
	Message          string            `json:"message"`
	Errors           []ValidationError `json:"errors,omitempty"`
	RemainingPayable string            `json:"remaining_payable,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts domain errors attached to the gin
// context into the JSON error envelope.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request body")
}

// validationSentinels are input errors from the domain services. They
// all map to 422 with their snake_case code as the validation code.
var validationSentinels = []error{
	taxcalcdomain.ErrNegativeAmount,
	taxcalcdomain.ErrNegativeIncome,
	taxcalcdomain.ErrNegativeQuantity,
	taxcalcdomain.ErrInvalidVATRate,
	taxcalcdomain.ErrInvalidDiscount,
	taxcalcdomain.ErrUnknownCategory,
	taxcalcdomain.ErrUnknownVehicle,
	taxcalcdomain.ErrInvalidModelYear,
	taxcalcdomain.ErrInvalidDisplacement,
	taxcalcdomain.ErrNegativeDays,
	taxcalcdomain.ErrInvalidRate,
	customerdomain.ErrInvalidName,
	customerdomain.ErrInvalidEmail,
	customerdomain.ErrInvalidID,
	invoicedomain.ErrInvalidID,
	invoicedomain.ErrInvalidNumber,
	invoicedomain.ErrInvalidStatus,
	invoicedomain.ErrInvalidCustomer,
	paymentdomain.ErrInvalidID,
	paymentdomain.ErrInvalidAmount,
	paymentdomain.ErrInvalidStatus,
	paymentdomain.ErrInvalidInvoice,
	taxreturndomain.ErrInvalidID,
	taxreturndomain.ErrInvalidType,
	taxreturndomain.ErrInvalidPeriod,
	taxreturndomain.ErrInvalidAmount,
	taxreturndomain.ErrInvalidStatus,
}

var notFoundSentinels = []error{
	customerdomain.ErrNotFound,
	invoicedomain.ErrNotFound,
	paymentdomain.ErrNotFound,
	taxreturndomain.ErrNotFound,
	gorm.ErrRecordNotFound,
}

var ownerSentinels = []error{
	customerdomain.ErrInvalidOwner,
	invoicedomain.ErrInvalidOwner,
	paymentdomain.ErrInvalidOwner,
	taxreturndomain.ErrInvalidOwner,
}

func mapError(err error) (int, errorPayload) {
	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	var overpayment *paymentdomain.OverpaymentError
	if errors.As(err, &overpayment) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:             "overpayment",
			Message:          overpayment.Error(),
			RemainingPayable: overpayment.RemainingPayable.StringFixed(2),
		}
	}

	var invalidTransition *lifecycle.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return http.StatusConflict, errorPayload{
			Type:    "invalid_transition",
			Message: invalidTransition.Error(),
		}
	}

	var immutable *lifecycle.ImmutableStateError
	if errors.As(err, &immutable) {
		return http.StatusConflict, errorPayload{
			Type:    "immutable_state",
			Message: immutable.Error(),
		}
	}

	var duplicate *taxreturndomain.DuplicatePeriodError
	if errors.As(err, &duplicate) {
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_period",
			Message: duplicate.Error(),
		}
	}

	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusUnprocessableEntity, errorPayload{
				Type:    "validation_error",
				Message: "validation error",
				Errors: []ValidationError{
					{
						Field:   "request",
						Code:    sentinel.Error(),
						Message: "invalid value",
					},
				},
			}
		}
	}

	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusNotFound, errorPayload{
				Type:    "not_found",
				Message: "resource not found",
			}
		}
	}

	for _, sentinel := range ownerSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusUnauthorized, errorPayload{
				Type:    "unauthorized",
				Message: "missing or invalid owner",
			}
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
