package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidCoupon is returned when a coupon code matches nothing in
// either the authoritative store or the local fallback table.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// ErrEmptyCart is returned when an operation requires at least one cart line.
var ErrEmptyCart = errors.New("cart is empty")

// UnknownProductError means a cart line references a product id that is
// absent from the catalog. The line must not be silently skipped, since
// skipping would undercharge the order.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %s not found in catalog", e.ProductID)
}

// BelowMinimumError means the subtotal does not reach the coupon's
// minimum-order threshold. It carries the required minimum so callers
// can surface it to the user.
type BelowMinimumError struct {
	Code     string
	MinOrder float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum order of $%g required for coupon %s", e.MinOrder, e.Code)
}
