package models_test

import (
	"testing"

	"skyrestaurant/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddAndAdjust(t *testing.T) {
	cart := models.NewCart()

	cart.Add("prod-1", 2)
	cart.Add("prod-1", 1)
	cart.Add("prod-2", 1)

	assert.Equal(t, 3, cart.Quantity("prod-1"))
	assert.Equal(t, 4, cart.ItemCount())
	assert.Len(t, cart.Lines(), 2)

	cart.AdjustQuantity("prod-1", -1)
	assert.Equal(t, 2, cart.Quantity("prod-1"))
}

func TestCart_QuantityNeverZeroOrNegative(t *testing.T) {
	cart := models.NewCart()
	cart.Add("prod-1", 1)

	// Dropping to zero removes the line instead of storing a zero.
	cart.AdjustQuantity("prod-1", -1)
	assert.Equal(t, 0, cart.Quantity("prod-1"))
	assert.True(t, cart.IsEmpty())

	cart.Add("prod-2", 2)
	cart.AdjustQuantity("prod-2", -5)
	assert.True(t, cart.IsEmpty())

	// Adding a non-positive quantity is ignored outright.
	cart.Add("prod-3", 0)
	cart.Add("prod-3", -2)
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := models.NewCart()
	cart.Add("prod-1", 1)
	cart.Add("prod-2", 2)

	cart.Remove("prod-1")
	assert.Equal(t, 0, cart.Quantity("prod-1"))
	assert.Equal(t, 2, cart.Quantity("prod-2"))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.ItemCount())
}

func TestCart_LinesAreACopy(t *testing.T) {
	cart := models.NewCart()
	cart.Add("prod-1", 1)

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, cart.Quantity("prod-1"))
}

func TestCanonicalCouponCode(t *testing.T) {
	assert.Equal(t, "OFFER15", models.CanonicalCouponCode("  offer15 "))
	assert.Equal(t, "WELCOME10", models.CanonicalCouponCode("Welcome10"))
	assert.Equal(t, "", models.CanonicalCouponCode("   "))
}
