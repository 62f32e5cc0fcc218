package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

const (
	ErrRequired      = "is required"
	ErrMinValue      = "must be at least %s"
	ErrMaxValue      = "must be at most %s"
	ErrMinItems      = "must contain at least %s item(s)"
	ErrMaxItems      = "must contain at most %s item(s)"
	ErrUniqueItems   = "must not contain duplicates"
	ErrSeatID        = "must be a row letter followed by a seat number, e.g. A12"
	ErrPaymentStatus = "must be one of pending, success, failed"
	ErrInvalid       = "is invalid"
)

var seatIDRgx = regexp.MustCompile(`^[A-Z]{1,3}[1-9][0-9]{0,3}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_id", validateSeatID)
	validator.RegisterValidation("payment_status", validatePaymentStatus)

	return validator
}

func validateSeatID(fl validator.FieldLevel) bool {
	return seatIDRgx.MatchString(fl.Field().String())
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	return domain.PaymentStatus(fl.Field().String()).Valid()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min", "gte":
		if isCollection(err) {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		if isCollection(err) {
			return fmt.Sprintf(ErrMaxItems, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "unique":
		return ErrUniqueItems
	case "seat_id":
		return ErrSeatID
	case "payment_status":
		return ErrPaymentStatus
	default:
		return ErrInvalid
	}
}

func isCollection(err validator.FieldError) bool {
	switch err.Kind().String() {
	case "slice", "array", "map":
		return true
	default:
		return false
	}
}
