// Package pricing implements the cart pricing rules: subtotal
// computation, coupon application with minimum-order gating, and total
// derivation. Both the coupon validation endpoint and the storefront's
// local fallback go through this package, so the two paths can never
// disagree on business rules.
package pricing

import (
	"skyrestaurant/internal/models"
)

// PriceLookup resolves a product id to its unit price. The boolean is
// false when the id is unknown to the catalog.
type PriceLookup func(productID string) (float64, bool)

// CatalogPrices builds a PriceLookup over a product list.
func CatalogPrices(products []models.Product) PriceLookup {
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return func(id string) (float64, bool) {
		price, ok := prices[id]
		return price, ok
	}
}

// Subtotal sums price x quantity over every cart line. It fails with
// UnknownProductError if a line references an id the catalog does not
// have; lines are never skipped.
func Subtotal(cart *models.Cart, prices PriceLookup) (float64, error) {
	var subtotal float64
	for _, line := range cart.Lines() {
		price, ok := prices(line.ProductID)
		if !ok {
			return 0, &UnknownProductError{ProductID: line.ProductID}
		}
		subtotal += price * float64(line.Quantity)
	}
	return subtotal, nil
}

// Discount computes the discount a coupon yields on a subtotal that has
// already passed the minimum-order gate. Fixed coupons are clamped to
// the subtotal so the total can never go negative.
func Discount(subtotal float64, coupon *models.Coupon) float64 {
	switch coupon.Type {
	case models.CouponPercentage:
		return subtotal * coupon.Value / 100
	case models.CouponFixed:
		if coupon.Value > subtotal {
			return subtotal
		}
		return coupon.Value
	}
	return 0
}

// ApplyCoupon derives a PricingResult from a subtotal and an optional
// coupon. A nil coupon yields no discount. A subtotal below the coupon's
// minimum order fails with BelowMinimumError; the caller must clear its
// active-coupon state and reprice without a discount.
func ApplyCoupon(subtotal float64, coupon *models.Coupon) (models.PricingResult, error) {
	result := models.PricingResult{Subtotal: subtotal, Total: subtotal}
	if coupon == nil {
		return result, nil
	}
	if subtotal < coupon.MinOrder {
		return result, &BelowMinimumError{Code: coupon.Code, MinOrder: coupon.MinOrder}
	}

	discount := Discount(subtotal, coupon)
	total := subtotal - discount
	if total < 0 {
		// The fixed-coupon clamp already guarantees this, but a
		// negative total must never escape this package.
		total = 0
	}

	code := coupon.Code
	result.CouponCode = &code
	result.Discount = discount
	result.Total = total
	return result, nil
}

// CheckCoupon runs the shared eligibility rules against a coupon looked
// up from any source: it must exist, be active, and the subtotal must
// reach its minimum order.
func CheckCoupon(coupon *models.Coupon, subtotal float64) error {
	if coupon == nil || !coupon.Active {
		return ErrInvalidCoupon
	}
	if subtotal < coupon.MinOrder {
		return &BelowMinimumError{Code: coupon.Code, MinOrder: coupon.MinOrder}
	}
	return nil
}
