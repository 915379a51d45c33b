package checkout_test

import (
	"errors"
	"testing"

	"skyrestaurant/internal/checkout"
	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogLookup(products []models.Product) checkout.ProductLookup {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return func(id string) (*models.Product, bool) {
		p, ok := byID[id]
		if !ok {
			return nil, false
		}
		return &p, true
	}
}

func validCustomer() models.Customer {
	return models.Customer{
		Name:      "Ahmed Hassan",
		Phone:     "01234567890",
		Email:     "ahmed@example.com",
		Address:   "12 Nile St, Cairo",
		PayMethod: "cash",
	}
}

func TestValidateCustomer(t *testing.T) {
	assert.NoError(t, checkout.ValidateCustomer(validCustomer()))
}

func TestValidateCustomer_MissingFields(t *testing.T) {
	err := checkout.ValidateCustomer(models.Customer{Phone: "01234567890"})
	require.Error(t, err)

	var invalid *checkout.InvalidCustomerInfoError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"address", "name", "paymethod"}, invalid.Fields)
}

func TestValidateCustomer_PhonePattern(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"eleven digits starting 01", "01234567890", true},
		{"ten digits", "0123456789", false},
		{"twelve digits", "012345678901", false},
		{"wrong prefix", "02234567890", false},
		{"letters", "01abc456789", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := validCustomer()
			customer.Phone = tt.phone
			err := checkout.ValidateCustomer(customer)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				var invalid *checkout.InvalidCustomerInfoError
				require.True(t, errors.As(err, &invalid))
				assert.Contains(t, invalid.Fields, "phone")
			}
		})
	}
}

func TestValidateCustomer_Email(t *testing.T) {
	customer := validCustomer()
	customer.Email = "not-an-email"
	err := checkout.ValidateCustomer(customer)
	var invalid *checkout.InvalidCustomerInfoError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Fields, "email")

	// Email is optional.
	customer.Email = ""
	assert.NoError(t, checkout.ValidateCustomer(customer))
}

func TestAssembleOrder(t *testing.T) {
	catalog := []models.Product{
		{ID: "prod-1", Name: "Burger", Price: 50},
		{ID: "prod-2", Name: "Pizza", Price: 80},
	}
	cart := models.NewCart()
	cart.Add("prod-1", 2)
	cart.Add("prod-2", 1)

	code := "WELCOME10"
	result := models.PricingResult{Subtotal: 180, CouponCode: &code, Discount: 18, Total: 162}

	order, err := checkout.AssembleOrder(cart, catalogLookup(catalog), validCustomer(), result)
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderID)
	assert.Contains(t, order.OrderID, "ORD-")
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 180.0, order.Subtotal)
	assert.Equal(t, 18.0, order.Discount)
	assert.Equal(t, 162.0, order.Total)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "WELCOME10", *order.CouponCode)
	assert.Equal(t, "ASAP", order.Customer.DeliveryTime)

	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderItem{ProductID: "prod-1", Name: "Burger", Quantity: 2, Price: 50, Subtotal: 100}, order.Items[0])
	assert.Equal(t, models.OrderItem{ProductID: "prod-2", Name: "Pizza", Quantity: 1, Price: 80, Subtotal: 80}, order.Items[1])
}

func TestAssembleOrder_EmptyCart(t *testing.T) {
	_, err := checkout.AssembleOrder(models.NewCart(), catalogLookup(nil), validCustomer(), models.PricingResult{})
	assert.ErrorIs(t, err, pricing.ErrEmptyCart)
}

func TestAssembleOrder_UnknownProduct(t *testing.T) {
	cart := models.NewCart()
	cart.Add("prod-ghost", 1)

	_, err := checkout.AssembleOrder(cart, catalogLookup(nil), validCustomer(), models.PricingResult{})
	var unknown *pricing.UnknownProductError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "prod-ghost", unknown.ProductID)
}

func TestAssembleOrder_PureExceptIDAndTimestamp(t *testing.T) {
	catalog := []models.Product{{ID: "prod-1", Name: "Burger", Price: 50}}
	cart := models.NewCart()
	cart.Add("prod-1", 2)
	result := models.PricingResult{Subtotal: 100, Total: 100}

	first, err := checkout.AssembleOrder(cart, catalogLookup(catalog), validCustomer(), result)
	require.NoError(t, err)
	second, err := checkout.AssembleOrder(cart, catalogLookup(catalog), validCustomer(), result)
	require.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.Discount, second.Discount)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Customer, second.Customer)
	assert.NotEqual(t, first.OrderID, second.OrderID)

	// Assembly does not touch the cart.
	assert.Equal(t, 2, cart.Quantity("prod-1"))
}

func TestAssembleOrder_SnapshotIndependentOfCatalogEdits(t *testing.T) {
	catalog := []models.Product{{ID: "prod-1", Name: "Burger", Price: 50}}
	cart := models.NewCart()
	cart.Add("prod-1", 1)

	order, err := checkout.AssembleOrder(cart, catalogLookup(catalog), validCustomer(), models.PricingResult{Subtotal: 50, Total: 50})
	require.NoError(t, err)

	// A later price change must not alter the stored snapshot.
	catalog[0].Price = 75
	assert.Equal(t, 50.0, order.Items[0].Price)
	assert.Equal(t, 50.0, order.Items[0].Subtotal)
}

func TestNewOrderID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := checkout.NewOrderID()
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}
