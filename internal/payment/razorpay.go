// Package payment talks to the hosted payment gateway: it opens payment
// sessions for pending orders and checks the signatures the gateway attaches
// to completed payments.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

// MinorUnits converts whole currency units to the gateway's smallest unit.
const MinorUnits = 100

type RazorpayClient struct {
	logger  *slog.Logger
	http    *http.Client
	baseURL string
	keyID   string
	secret  string
}

func NewRazorpayClient(logger *slog.Logger, cfg config.Razorpay) *RazorpayClient {
	return &RazorpayClient{
		logger:  logger.With(slog.String("client", "razorpay")),
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		keyID:   cfg.KeyID,
		secret:  cfg.KeySecret,
	}
}

// KeyID is the public key the browser widget is opened with.
func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateSession registers the order total with the gateway. The returned
// session amount is in minor units.
func (c *RazorpayClient) CreateSession(ctx context.Context, req entities.SessionRequest) (entities.PaymentSession, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   req.Amount * MinorUnits,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    map[string]string{"order_id": req.OrderID},
	})
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("failed to marshal session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("failed to build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.secret)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "razorpay create order",
		slog.Int("status", resp.StatusCode),
		slog.String("receipt", req.Receipt),
		slog.String("duration", time.Since(start).String()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return entities.PaymentSession{}, fmt.Errorf("razorpay returned %d: %s %s", resp.StatusCode, e.Error.Code, e.Error.Description)
	}

	var out orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entities.PaymentSession{}, fmt.Errorf("failed to decode razorpay order: %w", err)
	}
	if out.ID == "" {
		return entities.PaymentSession{}, fmt.Errorf("razorpay returned order without id")
	}

	return entities.PaymentSession{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
	}, nil
}
