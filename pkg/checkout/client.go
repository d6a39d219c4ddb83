package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Address struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	Customer        Customer    `json:"customer"`
	ShippingAddress Address     `json:"shipping_address"`
	BillingAddress  *Address    `json:"billing_address,omitempty"`
	ShippingMethod  string      `json:"shipping_method,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	PaymentMethod   string      `json:"payment_method"`
}

type CreatedOrder struct {
	OrderID          string `json:"order_id"`
	OrderNumber      string `json:"order_number"`
	Subtotal         int64  `json:"subtotal"`
	Shipping         int64  `json:"shipping"`
	Tax              int64  `json:"tax"`
	Total            int64  `json:"total"`
	Currency         string `json:"currency"`
	PaymentMethod    string `json:"payment_method"`
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	KeyID            string `json:"razorpay_key_id,omitempty"`
}

type VerifyRequest struct {
	OrderID string `json:"order_id"`
	Callback
}

type VerifyResult struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// OrderAPI is the server side of the checkout.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req OrderRequest) (CreatedOrder, error)
	VerifyPayment(ctx context.Context, req VerifyRequest) (VerifyResult, error)
}

// APIError is a non-2xx answer from the order API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("order api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the checkout HTTP API.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default client with a 15s timeout.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.http = c }
}

// WithUserID sends the signed-in user's id the way the auth proxy does.
func WithUserID(id string) ClientOption {
	return func(cl *Client) { cl.userID = id }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (CreatedOrder, error) {
	var res CreatedOrder
	if err := c.post(ctx, "/orders", req, &res); err != nil {
		return CreatedOrder{}, fmt.Errorf("failed to create order: %w", err)
	}
	return res, nil
}

func (c *Client) VerifyPayment(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	var res VerifyResult
	if err := c.post(ctx, "/payments/verify", req, &res); err != nil {
		return VerifyResult{}, fmt.Errorf("failed to verify payment: %w", err)
	}
	return res, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
