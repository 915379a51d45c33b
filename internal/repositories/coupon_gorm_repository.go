package repositories

import (
	"fmt"

	"skyrestaurant/internal/models"

	"gorm.io/gorm"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	db *gorm.DB
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{
		db: db,
	}
}

// GetAllActive retrieves every active coupon.
func (r *GORMCouponRepository) GetAllActive() ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.Where("active = ?", true).Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to get active coupons: %w", err)
	}
	return coupons, nil
}

// GetByCode retrieves a single coupon by its canonicalized code.
func (r *GORMCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	canonical := models.CanonicalCouponCode(code)
	if err := r.db.First(&coupon, "code = ?", canonical).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon by code %s: %w", canonical, err)
	}
	return &coupon, nil
}

// Create stores a new coupon with its code canonicalized.
func (r *GORMCouponRepository) Create(coupon *models.Coupon) error {
	coupon.Code = models.CanonicalCouponCode(coupon.Code)
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}
