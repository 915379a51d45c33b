package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"skyrestaurant/internal/checkout"
	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"
	"skyrestaurant/internal/repositories"
	"skyrestaurant/pkg/rabbitmq"
)

// OrderService handles business logic related to orders: accepting
// checkout submissions, listing, lookup and status updates.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in
// which case order events are simply not published.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByOrderID retrieves a single order by its generated id.
func (s *OrderService) GetOrderByOrderID(orderID string) (*models.Order, error) {
	return s.orderRepo.GetByOrderID(orderID)
}

// CreateOrder accepts a checkout submission: customer snapshot, frozen
// item records and the pricing figures. It validates the customer,
// rejects an empty item list, assigns a fresh order id and persists the
// order as a single atomic insert. Nothing is written on a validation
// failure.
func (s *OrderService) CreateOrder(customer models.Customer, items models.OrderItems, result models.PricingResult) (*models.Order, error) {
	if err := checkout.ValidateCustomer(customer); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pricing.ErrEmptyCart
	}
	if customer.DeliveryTime == "" {
		customer.DeliveryTime = "ASAP"
	}

	order := &models.Order{
		OrderID:    checkout.NewOrderID(),
		Customer:   customer,
		Items:      items,
		Subtotal:   result.Subtotal,
		Discount:   result.Discount,
		CouponCode: result.CouponCode,
		Total:      result.Total,
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderEvent("order.created", map[string]interface{}{
		"orderID": order.OrderID,
		"status":  order.Status,
		"total":   order.Total,
	})

	return order, nil
}

// UpdateOrderStatus replaces the status of an existing order. Only the
// known statuses are accepted; the id must exist.
func (s *OrderService) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if err == repositories.ErrOrderNotFound {
			return err
		}
		return fmt.Errorf("failed to update order status for order %s: %w", orderID, err)
	}

	s.publishOrderEvent("order.status_updated", map[string]interface{}{
		"orderID": orderID,
		"status":  status,
	})

	return nil
}

// publishOrderEvent sends an order event to RabbitMQ. Publishing is
// best-effort: a broker failure is logged, never surfaced to the caller.
func (s *OrderService) publishOrderEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
