package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus is the closed set of states an order can be in.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a frozen copy of one cart line joined with the catalog at
// checkout time. Price is the unit price when the order was placed, so
// later catalog edits never alter historical orders.
type OrderItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"qty"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderItems stores the item snapshot as a JSON text column.
type OrderItems []OrderItem

// Value implements driver.Valuer so GORM can persist items as JSON.
func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the JSON column back.
func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for order items column", value)
	}
	if len(data) == 0 {
		*o = nil
		return nil
	}
	return json.Unmarshal(data, o)
}

// Order is an immutable snapshot of a checkout: cart items, customer
// details and the pricing result, taken at assembly time. Only Status
// changes after creation.
type Order struct {
	ID         uint        `json:"-" gorm:"primaryKey"`
	OrderID    string      `json:"id" gorm:"column:order_id;uniqueIndex;type:varchar(64)"`
	Customer   Customer    `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Items      OrderItems  `json:"items" gorm:"type:text"`
	Subtotal   float64     `json:"subtotal"`
	Discount   float64     `json:"discount"`
	CouponCode *string     `json:"coupon" gorm:"column:coupon_code"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);default:pending"`
	CreatedAt  time.Time   `json:"date"`
}
