package handlers

import (
	"errors"
	"fmt"
	"log"

	"skyrestaurant/internal/pricing"
	"skyrestaurant/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CouponHandler handles HTTP requests for discount coupons.
type CouponHandler struct {
	service *services.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service: service,
	}
}

// RegisterRoutes registers the coupon routes with the Fiber app.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Get("/", h.HandleGetCoupons)
	couponRoutes.Post("/validate", h.HandleValidateCoupon)
}

// HandleGetCoupons returns every coupon customers can currently use.
func (h *CouponHandler) HandleGetCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.GetActiveCoupons()
	if err != nil {
		log.Printf("Error getting active coupons: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load coupons",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    coupons,
	})
}

// HandleValidateCoupon checks a coupon code against a cart subtotal. An
// unknown code is a 404; a subtotal below the coupon's minimum is a 400
// carrying the required minimum so the client can show it.
func (h *CouponHandler) HandleValidateCoupon(c *fiber.Ctx) error {
	var req struct {
		Code     string  `json:"code"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing coupon validation body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Coupon code is required",
		})
	}

	coupon, err := h.service.Validate(req.Code, req.Subtotal)
	if err != nil {
		var below *pricing.BelowMinimumError
		switch {
		case errors.Is(err, pricing.ErrInvalidCoupon):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid coupon code",
			})
		case errors.As(err, &below):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success":  false,
				"error":    fmt.Sprintf("Minimum order of $%g required", below.MinOrder),
				"minOrder": below.MinOrder,
			})
		default:
			log.Printf("Error validating coupon %s: %v", req.Code, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to validate coupon",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    coupon,
	})
}
