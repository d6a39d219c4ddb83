package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SergeyBogomolovv/storefront-checkout/pkg/cart"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoPaymentSession   = errors.New("order has no payment session")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

const (
	MethodGateway = "razorpay"
	MethodCOD     = "cod"
)

// MinorUnits converts the API's whole currency units into the smallest unit
// the widget charges in (paise for INR).
const MinorUnits = 100

// Form is what the shopper typed on the checkout page.
type Form struct {
	Customer        Customer
	ShippingAddress Address
	// nil means same as shipping
	BillingAddress *Address
	ShippingMethod string
	Notes          string
	PaymentMethod  string
}

type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

type Result struct {
	Status      Status
	OrderID     string
	OrderNumber string
	// empty for StatusCancelled, the shopper stays on the checkout page
	RedirectURL string
}

type Flow struct {
	logger *slog.Logger
	api    OrderAPI
	widget Widget
	// Shown in the widget header
	storeName string
}

func NewFlow(logger *slog.Logger, api OrderAPI, widget Widget, storeName string) *Flow {
	return &Flow{
		logger:    logger.With(slog.String("service", "checkout")),
		api:       api,
		widget:    widget,
		storeName: storeName,
	}
}

// Checkout submits the cart and, for gateway orders, runs the widget and
// verification. The cart is cleared only on success.
func (f *Flow) Checkout(ctx context.Context, c *cart.Cart, form Form) (Result, error) {
	lines := c.Items()
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	req := OrderRequest{
		Items:           make([]OrderItem, 0, len(lines)),
		Customer:        form.Customer,
		ShippingAddress: form.ShippingAddress,
		BillingAddress:  form.BillingAddress,
		ShippingMethod:  form.ShippingMethod,
		Notes:           form.Notes,
		PaymentMethod:   form.PaymentMethod,
	}
	for _, l := range lines {
		req.Items = append(req.Items, OrderItem{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}

	order, err := f.api.CreateOrder(ctx, req)
	if err != nil {
		return Result{}, err
	}
	logger := f.logger.With(slog.String("order_id", order.OrderID))

	if order.PaymentMethod == MethodCOD {
		c.Clear()
		logger.Info("cod order placed")
		return success(order), nil
	}

	if order.PaymentSessionID == "" {
		return Result{}, ErrNoPaymentSession
	}

	outcome := f.widget.Open(ctx, Options{
		KeyID:       order.KeyID,
		Amount:      order.Total * MinorUnits,
		Currency:    order.Currency,
		SessionID:   order.PaymentSessionID,
		Description: fmt.Sprintf("%s order %s", f.storeName, order.OrderNumber),
		Prefill: Prefill{
			Name:  fullName(form.Customer),
			Email: form.Customer.Email,
			Phone: form.Customer.Phone,
		},
	})

	switch outcome.Kind {
	case OutcomeSuccess:
	case OutcomeDismissed:
		logger.Info("payment cancelled")
		return Result{Status: StatusCancelled, OrderID: order.OrderID, OrderNumber: order.OrderNumber}, nil
	case OutcomeLoadFailed:
		return Result{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, outcome.Err)
	default:
		return Result{}, fmt.Errorf("%w: unexpected outcome %s", ErrGatewayUnavailable, outcome.Kind)
	}

	if _, err := f.api.VerifyPayment(ctx, VerifyRequest{OrderID: order.OrderID, Callback: outcome.Callback}); err != nil {
		logger.Error("payment verification failed", "err", err)
		return Result{
			Status:      StatusFailed,
			OrderID:     order.OrderID,
			OrderNumber: order.OrderNumber,
			RedirectURL: redirect("/checkout/failure", order.OrderID),
		}, nil
	}

	c.Clear()
	logger.Info("payment verified")
	return success(order), nil
}

func success(order CreatedOrder) Result {
	return Result{
		Status:      StatusSuccess,
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		RedirectURL: redirect("/checkout/success", order.OrderID),
	}
}

func redirect(path, orderID string) string {
	return path + "?" + url.Values{"orderId": {orderID}}.Encode()
}

func fullName(c Customer) string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
