// Package checkout turns a priced cart into an immutable order
// snapshot: customer validation, item snapshotting against the catalog,
// and order id generation.
package checkout

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProductLookup resolves a product id to the full product record. The
// boolean is false when the id is unknown to the catalog.
type ProductLookup func(productID string) (*models.Product, bool)

// InvalidCustomerInfoError names the customer fields that are missing or
// malformed. Order assembly is blocked until they are fixed.
type InvalidCustomerInfoError struct {
	Fields []string
}

func (e *InvalidCustomerInfoError) Error() string {
	return fmt.Sprintf("invalid customer info: %s", strings.Join(e.Fields, ", "))
}

var customerValidate = newCustomerValidator()

func newCustomerValidator() *validator.Validate {
	v := validator.New()
	if err := models.RegisterCustomerValidations(v); err != nil {
		panic(fmt.Sprintf("failed to register customer validations: %v", err))
	}
	return v
}

// jsonFieldNames maps Customer struct fields to their wire names so
// validation errors read the way the API speaks.
var jsonFieldNames = map[string]string{
	"Name":         "name",
	"Phone":        "phone",
	"Email":        "email",
	"Address":      "address",
	"PayMethod":    "paymethod",
	"DeliveryTime": "deliveryTime",
}

// ValidateCustomer checks the mandatory customer fields: name, phone,
// address and payment method must be present, the phone must match the
// local "01" + 9 digits format, and email (when given) must contain an
// '@'. Failures are reported together in one InvalidCustomerInfoError.
func ValidateCustomer(customer models.Customer) error {
	err := customerValidate.Struct(customer)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate customer: %w", err)
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		name, ok := jsonFieldNames[e.Field()]
		if !ok {
			name = e.Field()
		}
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return &InvalidCustomerInfoError{Fields: fields}
}

// NewOrderID generates an order identifier. The timestamp keeps ids
// monotonically distinguishable and human-readable; the random suffix
// makes collisions under rapid concurrent submissions a non-issue.
func NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// SnapshotItems freezes the cart lines against the catalog into order
// item records. Unit prices are captured by value, so catalog price
// edits after checkout never alter a stored order.
func SnapshotItems(cart *models.Cart, lookup ProductLookup) (models.OrderItems, error) {
	lines := cart.Lines()
	items := make(models.OrderItems, 0, len(lines))
	for _, line := range lines {
		product, ok := lookup(line.ProductID)
		if !ok {
			return nil, &pricing.UnknownProductError{ProductID: line.ProductID}
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Subtotal:  product.Price * float64(line.Quantity),
		})
	}
	return items, nil
}

// AssembleOrder is a pure transformation from (cart, catalog, customer,
// pricing result) to an order snapshot. It never persists and never
// mutates the cart; two calls with identical inputs differ only in the
// generated id and timestamp. Fails without side effects on an empty
// cart, invalid customer info, or a cart line missing from the catalog.
func AssembleOrder(cart *models.Cart, lookup ProductLookup, customer models.Customer, result models.PricingResult) (*models.Order, error) {
	if err := ValidateCustomer(customer); err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, pricing.ErrEmptyCart
	}
	items, err := SnapshotItems(cart, lookup)
	if err != nil {
		return nil, err
	}
	if customer.DeliveryTime == "" {
		customer.DeliveryTime = "ASAP"
	}
	return &models.Order{
		OrderID:    NewOrderID(),
		Customer:   customer,
		Items:      items,
		Subtotal:   result.Subtotal,
		Discount:   result.Discount,
		CouponCode: result.CouponCode,
		Total:      result.Total,
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
	}, nil
}
