package storefront

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"
)

// CatalogProvider lists the products available for sale.
type CatalogProvider interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// CouponProvider exposes coupon lookups: the full active table and
// validation of a single code against a subtotal.
type CouponProvider interface {
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	Validate(ctx context.Context, code string, subtotal float64) (*models.Coupon, error)
}

// OrderTransport submits a finished order and reads back the archive.
type OrderTransport interface {
	SubmitOrder(ctx context.Context, order *models.Order) (string, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// TransportError marks a remote-call fault: unreachable backend, error
// status, malformed response. It is always recovered via the local
// fallback path and never surfaced as a hard failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportFailure reports whether err is a remote-call fault rather
// than a business rule rejection.
func IsTransportFailure(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// CouponTable is a local, cached copy of the coupon definitions. It
// validates with the exact same rules as the backend so client and
// server totals can never diverge.
type CouponTable struct {
	coupons map[string]models.Coupon
}

// NewCouponTable builds a table keyed by canonical coupon code.
func NewCouponTable(coupons []models.Coupon) *CouponTable {
	table := make(map[string]models.Coupon, len(coupons))
	for _, c := range coupons {
		c.Code = models.CanonicalCouponCode(c.Code)
		table[c.Code] = c
	}
	return &CouponTable{coupons: table}
}

// ListCoupons returns the active coupons in the table.
func (t *CouponTable) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	out := make([]models.Coupon, 0, len(t.coupons))
	for _, c := range t.coupons {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

// Validate runs the shared eligibility rules against the cached table.
func (t *CouponTable) Validate(ctx context.Context, code string, subtotal float64) (*models.Coupon, error) {
	coupon, ok := t.coupons[models.CanonicalCouponCode(code)]
	if !ok {
		return nil, pricing.ErrInvalidCoupon
	}
	if err := pricing.CheckCoupon(&coupon, subtotal); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FallbackCouponProvider validates against a primary (remote) provider
// and retries a fallback (local) provider exactly once when the primary
// fails with a transport fault. Business rejections from the primary are
// returned as-is; they are authoritative.
type FallbackCouponProvider struct {
	Primary  CouponProvider
	Fallback CouponProvider
}

// ListCoupons prefers the primary table, falling back on transport failure.
func (f *FallbackCouponProvider) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := f.Primary.ListCoupons(ctx)
	if err == nil {
		return coupons, nil
	}
	if !IsTransportFailure(err) {
		return nil, err
	}
	log.Printf("Coupon listing unavailable, using local table: %v", err)
	return f.Fallback.ListCoupons(ctx)
}

// Validate prefers the primary validator, falling back on transport failure.
func (f *FallbackCouponProvider) Validate(ctx context.Context, code string, subtotal float64) (*models.Coupon, error) {
	coupon, err := f.Primary.Validate(ctx, code, subtotal)
	if err == nil {
		return coupon, nil
	}
	if !IsTransportFailure(err) {
		return nil, err
	}
	log.Printf("Coupon validation unreachable, using local table: %v", err)
	return f.Fallback.Validate(ctx, code, subtotal)
}

// FallbackProducts is the fixed built-in product set used when the
// catalog backend is unreachable, mirroring the seeded menu.
func FallbackProducts() []models.Product {
	return []models.Product{
		{
			ID:          "prod-1",
			Name:        "Burger",
			Description: "Beef burger with cheese",
			Price:       50,
			Category:    "Fast Food",
			Ingredients: models.StringSlice{"Beef", "Cheese", "Lettuce", "Tomato"},
			Popular:     true,
		},
		{
			ID:          "prod-2",
			Name:        "Pizza",
			Description: "Cheese pizza",
			Price:       80,
			Category:    "Italian",
			Ingredients: models.StringSlice{"Cheese", "Dough", "Tomato Sauce"},
			Popular:     true,
		},
		{
			ID:          "prod-3",
			Name:        "Grilled Kebab",
			Description: "400g beef kebab with special spices",
			Price:       65,
			Category:    "Grill",
			Ingredients: models.StringSlice{"Beef", "Onion", "Garlic", "Spices", "Parsley"},
			Popular:     true,
		},
		{
			ID:          "prod-4",
			Name:        "Chicken Pasta",
			Description: "Creamy pasta with grilled chicken and mushrooms",
			Price:       55,
			Category:    "Pasta",
			Ingredients: models.StringSlice{"Pasta", "Chicken", "Cream", "Mushrooms", "Parmesan"},
			Popular:     true,
		},
	}
}

// FallbackCoupons is the fixed built-in coupon table used when the
// coupon backend is unreachable, mirroring the seeded coupons.
func FallbackCoupons() []models.Coupon {
	return []models.Coupon{
		{Code: "WELCOME10", Type: models.CouponPercentage, Value: 10, MinOrder: 0, Description: "10% off on first order", Active: true},
		{Code: "OFFER15", Type: models.CouponPercentage, Value: 15, MinOrder: 25, Description: "15% off on orders above $25", Active: true},
		{Code: "OFFER5", Type: models.CouponFixed, Value: 5, MinOrder: 15, Description: "$5 off on orders above $15", Active: true},
		{Code: "SUPER20", Type: models.CouponPercentage, Value: 20, MinOrder: 40, Description: "20% off on orders above $40", Active: true},
		{Code: "QUICK10", Type: models.CouponPercentage, Value: 10, MinOrder: 20, Description: "10% off for quick orders", Active: true},
	}
}
