package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

type SignatureVerifier interface {
	Verify(orderID, paymentID, signature string) bool
}

// Notifier takes a freshly confirmed order for best-effort delivery.
// Enqueue must not block the request.
type Notifier interface {
	Enqueue(order entities.Order)
}

type paymentService struct {
	logger   *slog.Logger
	orders   OrderRepo
	verifier SignatureVerifier
	notifier Notifier
}

func NewPaymentService(logger *slog.Logger, orders OrderRepo, verifier SignatureVerifier, notifier Notifier) *paymentService {
	return &paymentService{
		logger:   logger.With(slog.String("service", "payment")),
		orders:   orders,
		verifier: verifier,
		notifier: notifier,
	}
}

// VerifyPayment is the trust boundary of checkout. A callback whose signature
// does not match leaves the order untouched. A valid callback confirms the
// order once; repeating it returns the confirmed order without side effects.
func (s *paymentService) VerifyPayment(ctx context.Context, req entities.VerifyRequest) (entities.Order, error) {
	cb := req.Callback
	logger := s.logger.With(
		slog.String("order_id", req.OrderID),
		slog.String("gateway_order_id", cb.ExternalOrderID),
		slog.String("gateway_payment_id", cb.ExternalPaymentID),
	)

	order, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if !errors.Is(err, entities.ErrOrderNotFound) {
			paymentVerifications.WithLabelValues("error").Inc()
		}
		return entities.Order{}, err
	}

	if order.PaymentSessionID == "" || order.PaymentSessionID != cb.ExternalOrderID ||
		!s.verifier.Verify(cb.ExternalOrderID, cb.ExternalPaymentID, cb.Signature) {
		signatureMismatches.Inc()
		paymentVerifications.WithLabelValues("rejected").Inc()
		logger.WarnContext(ctx, "payment signature rejected",
			slog.String("event", "payment_signature_mismatch"),
			slog.String("payment_status", string(order.PaymentStatus)),
		)
		return entities.Order{}, entities.ErrInvalidSignature
	}

	if order.PaymentStatus == entities.PaymentStatusCompleted {
		return s.alreadyCompleted(ctx, logger, order, cb)
	}

	transitioned, err := s.orders.CompletePayment(ctx, order.ID, cb.ExternalOrderID, cb.ExternalPaymentID, cb.Signature)
	if err != nil {
		paymentVerifications.WithLabelValues("error").Inc()
		return entities.Order{}, fmt.Errorf("failed to finalize order: %w", err)
	}

	// Перечитываем заказ: либо мы его только что подтвердили, либо это сделал параллельный запрос
	order, err = s.orders.GetOrderByID(ctx, order.ID)
	if err != nil {
		paymentVerifications.WithLabelValues("error").Inc()
		return entities.Order{}, fmt.Errorf("failed to reload order: %w", err)
	}

	if !transitioned {
		if order.PaymentStatus == entities.PaymentStatusCompleted {
			return s.alreadyCompleted(ctx, logger, order, cb)
		}
		paymentVerifications.WithLabelValues("not_payable").Inc()
		logger.WarnContext(ctx, "verified payment for order that can not be paid",
			slog.String("payment_status", string(order.PaymentStatus)),
			slog.String("status", string(order.Status)),
		)
		return entities.Order{}, entities.ErrOrderNotPayable
	}

	paymentVerifications.WithLabelValues("confirmed").Inc()
	logger.InfoContext(ctx, "payment verified, order confirmed", slog.String("order_number", order.OrderNumber))

	s.notifier.Enqueue(order)
	return order, nil
}

func (s *paymentService) alreadyCompleted(ctx context.Context, logger *slog.Logger, order entities.Order, cb entities.PaymentCallback) (entities.Order, error) {
	if order.PaymentTransactionID != cb.ExternalPaymentID {
		paymentVerifications.WithLabelValues("conflict").Inc()
		logger.WarnContext(ctx, "order already paid with another payment",
			slog.String("stored_payment_id", order.PaymentTransactionID),
		)
		return entities.Order{}, entities.ErrPaymentConflict
	}
	paymentVerifications.WithLabelValues("duplicate").Inc()
	logger.DebugContext(ctx, "payment already verified")
	return order, nil
}
