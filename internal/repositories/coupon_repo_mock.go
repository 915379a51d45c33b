package repositories

import (
	"fmt"
	"sort"
	"sync"

	"skyrestaurant/internal/models"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	coupons map[string]models.Coupon
	mu      sync.RWMutex
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[string]models.Coupon),
	}
}

// GetAllActive returns all active coupons sorted by code.
func (r *MockCouponRepository) GetAllActive() ([]models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	couponList := make([]models.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		if coupon.Active {
			couponList = append(couponList, coupon)
		}
	}
	sort.Slice(couponList, func(i, j int) bool {
		return couponList[i].Code < couponList[j].Code
	})
	return couponList, nil
}

// GetByCode returns a coupon by its canonicalized code.
func (r *MockCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical := models.CanonicalCouponCode(code)
	coupon, ok := r.coupons[canonical]
	if !ok {
		return nil, ErrCouponNotFound
	}
	return &coupon, nil
}

// Create adds a new coupon keyed by its canonical code.
func (r *MockCouponRepository) Create(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon.Code = models.CanonicalCouponCode(coupon.Code)
	if _, exists := r.coupons[coupon.Code]; exists {
		return fmt.Errorf("coupon with code %s already exists", coupon.Code)
	}
	r.coupons[coupon.Code] = *coupon
	return nil
}
