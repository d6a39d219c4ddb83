package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/payment"

	"github.com/google/uuid"
)

// SandboxWidget stands in for the hosted widget in local runs. It signs
// callbacks with the shared secret exactly like the gateway does.
type SandboxWidget struct {
	secret string
	// Decide picks the outcome kind for a session; nil means always pay
	Decide func(opts Options) OutcomeKind
	// Tamper lets tests and simulators corrupt a valid callback
	Tamper func(cb *Callback)
}

func NewSandboxWidget(secret string) *SandboxWidget {
	return &SandboxWidget{secret: secret}
}

func (w *SandboxWidget) Open(ctx context.Context, opts Options) Outcome {
	if err := ctx.Err(); err != nil {
		return LoadFailed(err)
	}

	kind := OutcomeSuccess
	if w.Decide != nil {
		kind = w.Decide(opts)
	}

	switch kind {
	case OutcomeDismissed:
		return Dismissed()
	case OutcomeLoadFailed:
		return LoadFailed(errors.New("sandbox: script failed to load"))
	}

	paymentID := "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
	cb := Callback{
		OrderID:   opts.SessionID,
		PaymentID: paymentID,
		Signature: payment.Sign(w.secret, opts.SessionID, paymentID),
	}
	if w.Tamper != nil {
		w.Tamper(&cb)
	}
	return Succeeded(cb)
}
