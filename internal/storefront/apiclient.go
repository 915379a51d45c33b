package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skyrestaurant/internal/models"
	"skyrestaurant/internal/pricing"
)

// APIClient talks to the restaurant backend over HTTP. It implements
// CatalogProvider, CouponProvider and OrderTransport. Any network fault
// or 5xx response comes back as a *TransportError so callers can take
// the local fallback path.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the backend at baseURL, e.g.
// "http://localhost:8080/api".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// envelope is the backend's standard JSON response wrapper.
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error"`
	MinOrder float64         `json:"minOrder"`
	OrderID  string          `json:"orderId"`
}

func (c *APIClient) do(ctx context.Context, op, method, path string, body interface{}) (*http.Response, *envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, nil, &TransportError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, nil, &TransportError{Op: op, Err: fmt.Errorf("server error %d: %s", resp.StatusCode, env.Error)}
	}
	return resp, &env, nil
}

// ListProducts fetches the menu.
func (c *APIClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	resp, env, err := c.do(ctx, "list products", http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, &TransportError{Op: "list products", Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, env.Error)}
	}
	var products []models.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, &TransportError{Op: "list products", Err: fmt.Errorf("malformed product list: %w", err)}
	}
	return products, nil
}

// ListCoupons fetches the active coupon table.
func (c *APIClient) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	resp, env, err := c.do(ctx, "list coupons", http.MethodGet, "/coupons", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, &TransportError{Op: "list coupons", Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, env.Error)}
	}
	var coupons []models.Coupon
	if err := json.Unmarshal(env.Data, &coupons); err != nil {
		return nil, &TransportError{Op: "list coupons", Err: fmt.Errorf("malformed coupon list: %w", err)}
	}
	return coupons, nil
}

// Validate asks the backend to validate a coupon code against a
// subtotal. Business rejections map onto the shared pricing errors:
// 404 is an invalid code, 400 carries the required minimum order.
func (c *APIClient) Validate(ctx context.Context, code string, subtotal float64) (*models.Coupon, error) {
	payload := map[string]interface{}{
		"code":     code,
		"subtotal": subtotal,
	}
	resp, env, err := c.do(ctx, "validate coupon", http.MethodPost, "/coupons/validate", payload)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var coupon models.Coupon
		if err := json.Unmarshal(env.Data, &coupon); err != nil {
			return nil, &TransportError{Op: "validate coupon", Err: fmt.Errorf("malformed coupon: %w", err)}
		}
		return &coupon, nil
	case http.StatusNotFound:
		return nil, pricing.ErrInvalidCoupon
	case http.StatusBadRequest:
		return nil, &pricing.BelowMinimumError{
			Code:     models.CanonicalCouponCode(code),
			MinOrder: env.MinOrder,
		}
	default:
		return nil, &TransportError{Op: "validate coupon", Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, env.Error)}
	}
}

// SubmitOrder posts a checkout payload and returns the backend-assigned
// order id.
func (c *APIClient) SubmitOrder(ctx context.Context, order *models.Order) (string, error) {
	resp, env, err := c.do(ctx, "submit order", http.MethodPost, "/orders", order)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusBadRequest {
		// The backend rejected the payload itself. That is a business
		// failure, not a reason to take the offline path.
		return "", fmt.Errorf("order rejected: %s", env.Error)
	}
	if resp.StatusCode != http.StatusCreated || !env.Success {
		return "", &TransportError{Op: "submit order", Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, env.Error)}
	}
	return env.OrderID, nil
}

// ListOrders fetches the order archive, newest first.
func (c *APIClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	resp, env, err := c.do(ctx, "list orders", http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, &TransportError{Op: "list orders", Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, env.Error)}
	}
	var orders []models.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, &TransportError{Op: "list orders", Err: fmt.Errorf("malformed order list: %w", err)}
	}
	return orders, nil
}
