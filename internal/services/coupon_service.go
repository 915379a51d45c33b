package services

import (
	"errors"

	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"
	"skyrestaurant/internal/repositories"
)

// CouponService handles business logic related to discount coupons.
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
	}
}

// GetActiveCoupons retrieves every coupon customers can currently use.
func (s *CouponService) GetActiveCoupons() ([]models.Coupon, error) {
	return s.repo.GetAllActive()
}

// Validate looks up a coupon by code and runs the eligibility rules
// against the given subtotal. An unknown or inactive code fails with
// pricing.ErrInvalidCoupon; a subtotal below the coupon's minimum fails
// with pricing.BelowMinimumError carrying the required minimum. Store
// failures propagate unchanged.
func (s *CouponService) Validate(code string, subtotal float64) (*models.Coupon, error) {
	canonical := models.CanonicalCouponCode(code)
	if canonical == "" {
		return nil, pricing.ErrInvalidCoupon
	}
	coupon, err := s.repo.GetByCode(canonical)
	if errors.Is(err, repositories.ErrCouponNotFound) {
		return nil, pricing.ErrInvalidCoupon
	}
	if err != nil {
		// A failing store is not an invalid code; let the caller report
		// a server fault so clients can take their fallback path.
		return nil, err
	}
	if err := pricing.CheckCoupon(coupon, subtotal); err != nil {
		return nil, err
	}
	return coupon, nil
}

// CreateCoupon issues a new coupon.
func (s *CouponService) CreateCoupon(coupon *models.Coupon) error {
	return s.repo.Create(coupon)
}
