package models

// PricingResult is the outcome of pricing a cart: the pre-discount
// subtotal, the coupon applied (nil when none), the discount amount and
// the final total. Discount never exceeds the subtotal, so Total is
// never negative.
type PricingResult struct {
	Subtotal   float64 `json:"subtotal"`
	CouponCode *string `json:"coupon"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
}
