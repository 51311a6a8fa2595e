package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Currency amounts must be strictly positive
	validate.RegisterValidation("amount_positive", func(fl validator.FieldLevel) bool {
		if amount, ok := fl.Field().Interface().(decimal.Decimal); ok {
			return amount.GreaterThan(decimal.Zero)
		}
		return false
	})

	// Currency amounts that may be zero but never negative
	validate.RegisterValidation("amount_gte_zero", func(fl validator.FieldLevel) bool {
		if amount, ok := fl.Field().Interface().(decimal.Decimal); ok {
			return amount.GreaterThanOrEqual(decimal.Zero)
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
