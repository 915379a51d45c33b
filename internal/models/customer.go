package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phone numbers are local format: "01" followed by exactly 9 digits.
var phonePattern = regexp.MustCompile(`^01\d{9}$`)

// Customer is the checkout contact snapshot captured on an order.
// Email is optional; everything else marked required must be present
// before an order can be assembled.
type Customer struct {
	Name         string `json:"name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,phone01"`
	Email        string `json:"email,omitempty" validate:"omitempty,contains=@"`
	Address      string `json:"address" validate:"required,max=255"`
	PayMethod    string `json:"paymethod" gorm:"column:payment_method" validate:"required"`
	DeliveryTime string `json:"deliveryTime" gorm:"column:delivery_time"`
}

// RegisterCustomerValidations adds the custom rules Customer relies on
// to a validator instance. Call it once per validator.Validate.
func RegisterCustomerValidations(v *validator.Validate) error {
	return v.RegisterValidation("phone01", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}
