// Package storefront implements the customer-facing shopping session:
// cart mutation with synchronous repricing, coupon application with a
// remote-first local-fallback validator, wishlist and saved customer
// info, and an offline-tolerant checkout.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skyrestaurant/internal/checkout"
	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"
	"skyrestaurant/pkg/localstore"
)

// Keys used in the local durable cache.
const (
	OrdersKey       = "SKY_ORDERS"
	WishlistKey     = "SKY_WISHLIST"
	CustomerInfoKey = "SKY_CUSTOMER_INFO"
)

// Session holds the mutable state of one user visit: the cart, the
// active coupon and the current pricing result. Pricing is recomputed
// synchronously after every cart or coupon change, so it can never go
// stale relative to the cart.
type Session struct {
	products map[string]models.Product
	catalog  []models.Product

	cart         *models.Cart
	activeCoupon *models.Coupon
	result       models.PricingResult
	wishlist     []string

	coupons CouponProvider
	orders  OrderTransport
	cache   *localstore.Store
}

// NewSession loads the catalog and coupon table (remote first, built-in
// fixed sets when the backend is unreachable) and restores the wishlist
// from the local cache. A nil cache disables local persistence.
func NewSession(ctx context.Context, catalog CatalogProvider, coupons CouponProvider, orders OrderTransport, cache *localstore.Store) (*Session, error) {
	s := &Session{
		cart:   models.NewCart(),
		orders: orders,
		cache:  cache,
	}

	productList, err := catalog.ListProducts(ctx)
	if err != nil {
		if !IsTransportFailure(err) {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		log.Printf("Catalog unavailable, using built-in products: %v", err)
		productList = FallbackProducts()
	}
	s.setCatalog(productList)

	couponList, err := coupons.ListCoupons(ctx)
	if err != nil {
		if !IsTransportFailure(err) {
			return nil, fmt.Errorf("failed to load coupons: %w", err)
		}
		log.Printf("Coupons unavailable, using built-in table: %v", err)
		couponList = FallbackCoupons()
	}
	s.coupons = &FallbackCouponProvider{
		Primary:  coupons,
		Fallback: NewCouponTable(couponList),
	}

	if cache != nil {
		if _, err := cache.Get(WishlistKey, &s.wishlist); err != nil {
			log.Printf("Failed to restore wishlist: %v", err)
		}
	}

	s.result = models.PricingResult{}
	return s, nil
}

func (s *Session) setCatalog(products []models.Product) {
	s.catalog = products
	s.products = make(map[string]models.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// Catalog returns the loaded product list.
func (s *Session) Catalog() []models.Product {
	return s.catalog
}

// Product looks a product up in the session catalog.
func (s *Session) Product(id string) (*models.Product, bool) {
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// Cart returns the session cart lines.
func (s *Session) Cart() []models.CartLine {
	return s.cart.Lines()
}

// Pricing returns the current pricing result.
func (s *Session) Pricing() models.PricingResult {
	return s.result
}

// ActiveCoupon returns the code of the applied coupon, empty if none.
func (s *Session) ActiveCoupon() string {
	if s.activeCoupon == nil {
		return ""
	}
	return s.activeCoupon.Code
}

// AddItem puts qty units of a product in the cart and reprices.
func (s *Session) AddItem(productID string, qty int) error {
	if _, ok := s.products[productID]; !ok {
		return &pricing.UnknownProductError{ProductID: productID}
	}
	s.cart.Add(productID, qty)
	return s.reprice()
}

// RemoveItem removes a product's line from the cart and reprices.
func (s *Session) RemoveItem(productID string) error {
	s.cart.Remove(productID)
	return s.reprice()
}

// AdjustQuantity changes a line's quantity by delta and reprices. A
// quantity that drops to zero removes the line.
func (s *Session) AdjustQuantity(productID string, delta int) error {
	s.cart.AdjustQuantity(productID, delta)
	return s.reprice()
}

// reprice recomputes the pricing result from the current cart and
// active coupon. A coupon whose minimum the subtotal no longer reaches
// is cleared entirely; a half-applied discount is never left behind.
func (s *Session) reprice() error {
	subtotal, err := pricing.Subtotal(s.cart, s.priceLookup())
	if err != nil {
		return err
	}

	result, err := pricing.ApplyCoupon(subtotal, s.activeCoupon)
	if err != nil {
		var below *pricing.BelowMinimumError
		if errors.As(err, &below) {
			s.activeCoupon = nil
			s.result = models.PricingResult{Subtotal: subtotal, Total: subtotal}
			return err
		}
		return err
	}
	s.result = result
	return nil
}

func (s *Session) priceLookup() pricing.PriceLookup {
	return func(id string) (float64, bool) {
		p, ok := s.products[id]
		if !ok {
			return 0, false
		}
		return p.Price, true
	}
}

// ApplyCoupon validates a code against the current subtotal, remote
// first with the local table as fallback, and applies it. On rejection
// the session keeps whatever coupon state it had before the call.
func (s *Session) ApplyCoupon(ctx context.Context, code string) error {
	canonical := models.CanonicalCouponCode(code)
	if canonical == "" {
		return pricing.ErrInvalidCoupon
	}

	subtotal, err := pricing.Subtotal(s.cart, s.priceLookup())
	if err != nil {
		return err
	}

	coupon, err := s.coupons.Validate(ctx, canonical, subtotal)
	if err != nil {
		return err
	}

	s.activeCoupon = coupon
	return s.reprice()
}

// RemoveCoupon clears the active coupon and reprices.
func (s *Session) RemoveCoupon() {
	s.activeCoupon = nil
	if err := s.reprice(); err != nil {
		// No coupon is applied, so the only possible failure is an
		// unknown product already caught on AddItem.
		log.Printf("Failed to reprice after coupon removal: %v", err)
	}
}

// Checkout assembles an order from the cart, the catalog and the given
// customer details, then submits it. When the backend is unreachable
// the locally-identified order is archived through the local cache and
// checkout still succeeds; the user sees an order either way. The cart
// and coupon are cleared only after a successful submission or archive.
func (s *Session) Checkout(ctx context.Context, customer models.Customer) (*models.Order, error) {
	order, err := checkout.AssembleOrder(s.cart, s.Product, customer, s.result)
	if err != nil {
		return nil, err
	}

	orderID, err := s.orders.SubmitOrder(ctx, order)
	switch {
	case err == nil:
		// The backend id is authoritative for the archived copy.
		order.OrderID = orderID
	case IsTransportFailure(err):
		log.Printf("Order submission unreachable, archiving locally: %v", err)
	default:
		return nil, err
	}

	s.archiveOrder(order)
	s.cart.Clear()
	s.activeCoupon = nil
	s.result = models.PricingResult{}
	return order, nil
}

// archiveOrder prepends the order to the local archive, mirroring the
// backend copy so the archive survives offline sessions.
func (s *Session) archiveOrder(order *models.Order) {
	if s.cache == nil {
		return
	}
	var archive []models.Order
	if _, err := s.cache.Get(OrdersKey, &archive); err != nil {
		log.Printf("Failed to read local order archive: %v", err)
		return
	}
	archive = append([]models.Order{*order}, archive...)
	if err := s.cache.Set(OrdersKey, archive); err != nil {
		log.Printf("Failed to write local order archive: %v", err)
	}
}

// Orders returns the order archive, remote first, local cache when the
// backend is unreachable.
func (s *Session) Orders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err == nil {
		return orders, nil
	}
	if !IsTransportFailure(err) {
		return nil, err
	}
	log.Printf("Order archive unreachable, using local copy: %v", err)

	var archive []models.Order
	if s.cache != nil {
		if _, cacheErr := s.cache.Get(OrdersKey, &archive); cacheErr != nil {
			return nil, cacheErr
		}
	}
	return archive, nil
}

// ToggleWishlist adds or removes a product from the wishlist and
// persists it.
func (s *Session) ToggleWishlist(productID string) error {
	if _, ok := s.products[productID]; !ok {
		return &pricing.UnknownProductError{ProductID: productID}
	}
	for i, id := range s.wishlist {
		if id == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return s.saveWishlist()
		}
	}
	s.wishlist = append(s.wishlist, productID)
	return s.saveWishlist()
}

// Wishlist returns the wishlisted product ids.
func (s *Session) Wishlist() []string {
	out := make([]string, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

func (s *Session) saveWishlist() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(WishlistKey, s.wishlist)
}

// SaveCustomerInfo stores the customer details for pre-filling the next
// checkout.
func (s *Session) SaveCustomerInfo(customer models.Customer) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(CustomerInfoKey, customer)
}

// SavedCustomerInfo restores previously saved customer details. The
// boolean is false when nothing has been saved.
func (s *Session) SavedCustomerInfo() (models.Customer, bool, error) {
	var customer models.Customer
	if s.cache == nil {
		return customer, false, nil
	}
	found, err := s.cache.Get(CustomerInfoKey, &customer)
	return customer, found, err
}
