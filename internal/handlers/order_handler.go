package handlers

import (
	"errors"
	"log"
	"strings"

	"skyrestaurant/internal/checkout"
	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"
	"skyrestaurant/internal/repositories"
	"skyrestaurant/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:orderId", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Patch("/:orderId/status", h.HandleUpdateOrderStatus)

	// Same data as /orders today; kept separate so the admin view can
	// grow filters without touching the public route.
	router.Get("/admin/orders", h.HandleGetOrders)
}

// HandleGetOrders returns all orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Could not retrieve orders",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// HandleGetOrderByID returns a single order by its generated id.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	order, err := h.service.GetOrderByOrderID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Could not retrieve order",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// orderRequest is the checkout submission payload.
type orderRequest struct {
	Customer models.Customer   `json:"customer"`
	Items    models.OrderItems `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Discount float64           `json:"discount"`
	Coupon   *string           `json:"coupon"`
	Total    float64           `json:"total"`
}

// HandleCreateOrder accepts a checkout submission and persists it.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	result := models.PricingResult{
		Subtotal:   req.Subtotal,
		CouponCode: req.Coupon,
		Discount:   req.Discount,
		Total:      req.Total,
	}

	order, err := h.service.CreateOrder(req.Customer, req.Items, result)
	if err != nil {
		var invalidInfo *checkout.InvalidCustomerInfoError
		switch {
		case errors.Is(err, pricing.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Missing customer information or items",
			})
		case errors.As(err, &invalidInfo):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Missing required customer fields: " + strings.Join(invalidInfo.Fields, ", "),
			})
		default:
			log.Printf("Error creating order: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Could not create order",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"orderId": order.OrderID,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// HandleUpdateOrderStatus replaces the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	var updateData struct {
		Status models.OrderStatus `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body for status update",
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Status is required",
		})
	}

	if err := h.service.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Order not found",
			})
		case strings.Contains(err.Error(), "invalid order status"):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		default:
			log.Printf("Error updating status for order %s: %v", orderID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Could not update order status",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status updated",
	})
}
