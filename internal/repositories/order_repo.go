package repositories

import (
	"errors"

	"skyrestaurant/internal/models"
)

// ErrOrderNotFound is returned by lookups and status updates that
// reference an order id the store has never seen.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access. Orders
// are append-only: they are never deleted, and only their status changes
// after creation.
type OrderRepository interface {
	// GetAll returns orders sorted by creation time, newest first.
	GetAll() ([]models.Order, error)
	GetByOrderID(orderID string) (*models.Order, error)
	// Create persists the order as a single atomic insert keyed by its
	// unique order id.
	Create(order *models.Order) error
	UpdateStatus(orderID string, status models.OrderStatus) error
}
