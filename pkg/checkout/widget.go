// Package checkout drives a cart through order creation, the hosted payment
// widget and server-side verification.
package checkout

import "context"

type Prefill struct {
	Name  string
	Email string
	Phone string
}

// Options configure one widget session. Amount is in minor units.
type Options struct {
	KeyID       string
	Amount      int64
	Currency    string
	SessionID   string
	Description string
	Prefill     Prefill
}

// Callback is what the gateway hands back after a successful payment.
type Callback struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeDismissed
	OutcomeLoadFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDismissed:
		return "dismissed"
	case OutcomeLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// Outcome is the single result of opening the widget. Callback is set only
// for OutcomeSuccess, Err only for OutcomeLoadFailed.
type Outcome struct {
	Kind     OutcomeKind
	Callback Callback
	Err      error
}

func Succeeded(cb Callback) Outcome {
	return Outcome{Kind: OutcomeSuccess, Callback: cb}
}

func Dismissed() Outcome {
	return Outcome{Kind: OutcomeDismissed}
}

func LoadFailed(err error) Outcome {
	return Outcome{Kind: OutcomeLoadFailed, Err: err}
}

// Widget is the hosted payment UI. Open blocks until the shopper pays,
// closes the widget, or the widget cannot be loaded.
type Widget interface {
	Open(ctx context.Context, opts Options) Outcome
}
