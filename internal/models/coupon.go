package models

import "strings"

// CouponType distinguishes how a coupon's value is interpreted.
type CouponType string

const (
	// CouponPercentage discounts a percentage of the subtotal.
	CouponPercentage CouponType = "percentage"
	// CouponFixed discounts a fixed amount, clamped to the subtotal.
	CouponFixed CouponType = "fixed"
)

// Coupon is a named discount rule. Codes are stored canonicalized to
// upper-case so lookups are case-insensitive.
type Coupon struct {
	Code        string     `json:"code" gorm:"primaryKey;type:varchar(50)" validate:"required,min=2,max=50"`
	Type        CouponType `json:"type" gorm:"type:varchar(20)" validate:"required,oneof=percentage fixed"`
	Value       float64    `json:"value" validate:"gte=0"`
	MinOrder    float64    `json:"minOrder" gorm:"column:min_order" validate:"gte=0"`
	Description string     `json:"description" validate:"omitempty,max=255"`
	Active      bool       `json:"active" gorm:"default:true"`
}

// CanonicalCouponCode normalizes a user-entered coupon code for lookup.
func CanonicalCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
