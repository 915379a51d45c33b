package pricing_test

import (
	"errors"
	"testing"

	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Product {
	return []models.Product{
		{ID: "prod-a", Name: "Product A", Price: 5.00},
		{ID: "prod-b", Name: "Product B", Price: 12.50},
	}
}

func TestSubtotal(t *testing.T) {
	prices := pricing.CatalogPrices(testCatalog())

	cart := models.NewCart()
	cart.Add("prod-a", 2)

	subtotal, err := pricing.Subtotal(cart, prices)
	assert.NoError(t, err)
	assert.Equal(t, 10.00, subtotal)

	cart.Add("prod-b", 3)
	subtotal, err = pricing.Subtotal(cart, prices)
	assert.NoError(t, err)
	assert.Equal(t, 47.50, subtotal)
}

func TestSubtotal_EmptyCart(t *testing.T) {
	subtotal, err := pricing.Subtotal(models.NewCart(), pricing.CatalogPrices(testCatalog()))
	assert.NoError(t, err)
	assert.Equal(t, 0.0, subtotal)
}

func TestSubtotal_UnknownProduct(t *testing.T) {
	cart := models.NewCart()
	cart.Add("prod-a", 1)
	cart.Add("prod-ghost", 2)

	_, err := pricing.Subtotal(cart, pricing.CatalogPrices(testCatalog()))
	require.Error(t, err)

	var unknown *pricing.UnknownProductError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "prod-ghost", unknown.ProductID)
}

func TestApplyCoupon_NoCoupon(t *testing.T) {
	result, err := pricing.ApplyCoupon(10.00, nil)
	require.NoError(t, err)
	assert.Equal(t, 10.00, result.Subtotal)
	assert.Equal(t, 0.0, result.Discount)
	assert.Equal(t, 10.00, result.Total)
	assert.Nil(t, result.CouponCode)
}

func TestApplyCoupon_Percentage(t *testing.T) {
	coupon := &models.Coupon{
		Code: "OFFER15", Type: models.CouponPercentage, Value: 15, MinOrder: 25, Active: true,
	}

	result, err := pricing.ApplyCoupon(30.00, coupon)
	require.NoError(t, err)
	assert.Equal(t, 30.00, result.Subtotal)
	assert.Equal(t, 4.50, result.Discount)
	assert.Equal(t, 25.50, result.Total)
	require.NotNil(t, result.CouponCode)
	assert.Equal(t, "OFFER15", *result.CouponCode)
}

func TestApplyCoupon_Fixed(t *testing.T) {
	coupon := &models.Coupon{
		Code: "OFFER5", Type: models.CouponFixed, Value: 5, MinOrder: 15, Active: true,
	}

	result, err := pricing.ApplyCoupon(20.00, coupon)
	require.NoError(t, err)
	assert.Equal(t, 5.00, result.Discount)
	assert.Equal(t, 15.00, result.Total)
}

func TestApplyCoupon_FixedClampedToSubtotal(t *testing.T) {
	// A $5 coupon on a $3 subtotal discounts $3, never driving the
	// total negative.
	coupon := &models.Coupon{
		Code: "OFFER5", Type: models.CouponFixed, Value: 5, MinOrder: 0, Active: true,
	}

	result, err := pricing.ApplyCoupon(3.00, coupon)
	require.NoError(t, err)
	assert.Equal(t, 3.00, result.Discount)
	assert.Equal(t, 0.0, result.Total)
}

func TestApplyCoupon_BelowMinimum(t *testing.T) {
	coupon := &models.Coupon{
		Code: "OFFER5", Type: models.CouponFixed, Value: 5, MinOrder: 15, Active: true,
	}

	result, err := pricing.ApplyCoupon(10.00, coupon)
	require.Error(t, err)

	var below *pricing.BelowMinimumError
	require.True(t, errors.As(err, &below))
	assert.Equal(t, 15.0, below.MinOrder)
	assert.Equal(t, "OFFER5", below.Code)

	// The returned result carries no discount.
	assert.Equal(t, 0.0, result.Discount)
	assert.Equal(t, 10.00, result.Total)
	assert.Nil(t, result.CouponCode)
}

func TestApplyCoupon_Idempotent(t *testing.T) {
	// Re-applying the same coupon on an unchanged subtotal reproduces
	// the identical result.
	coupon := &models.Coupon{
		Code: "WELCOME10", Type: models.CouponPercentage, Value: 10, Active: true,
	}

	first, err := pricing.ApplyCoupon(50.00, coupon)
	require.NoError(t, err)
	second, err := pricing.ApplyCoupon(50.00, coupon)
	require.NoError(t, err)

	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.Discount, second.Discount)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, *first.CouponCode, *second.CouponCode)
}

func TestCheckCoupon(t *testing.T) {
	active := &models.Coupon{Code: "SUPER20", Type: models.CouponPercentage, Value: 20, MinOrder: 40, Active: true}
	inactive := &models.Coupon{Code: "OLD10", Type: models.CouponPercentage, Value: 10, Active: false}

	assert.NoError(t, pricing.CheckCoupon(active, 45.00))
	assert.ErrorIs(t, pricing.CheckCoupon(nil, 45.00), pricing.ErrInvalidCoupon)
	assert.ErrorIs(t, pricing.CheckCoupon(inactive, 45.00), pricing.ErrInvalidCoupon)

	err := pricing.CheckCoupon(active, 39.99)
	var below *pricing.BelowMinimumError
	require.True(t, errors.As(err, &below))
	assert.Equal(t, 40.0, below.MinOrder)
}
