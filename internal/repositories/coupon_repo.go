package repositories

import (
	"errors"

	"skyrestaurant/internal/models"
)

// ErrCouponNotFound is returned by lookups for a code that does not
// exist. Callers rely on it to tell an unknown code apart from a
// failing store.
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository defines the interface for coupon data access. Codes
// are canonical upper-case; lookups canonicalize their input so matching
// is case-insensitive.
type CouponRepository interface {
	GetAllActive() ([]models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
}
