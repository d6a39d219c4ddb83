package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/payment"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	mocks "github.com/SergeyBogomolovv/storefront-checkout/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "rzp_test_secret"
	testOrderID   = "8d0f5f0e-8d43-4a7b-bb3e-0f6a1d1f6c11"
	testSessionID = "order_Rzp1"
	testPaymentID = "pay_Rzp1"
)

func pendingOrder() entities.Order {
	return entities.Order{
		ID:               testOrderID,
		OrderNumber:      "ORD-20261019-ABC123",
		Subtotal:         2598,
		Tax:              468,
		Total:            3066,
		Currency:         "INR",
		PaymentMethod:    entities.PaymentMethodRazorpay,
		PaymentStatus:    entities.PaymentStatusPending,
		Status:           entities.OrderStatusPending,
		PaymentSessionID: testSessionID,
	}
}

func confirmedOrder(paymentID string) entities.Order {
	o := pendingOrder()
	o.PaymentStatus = entities.PaymentStatusCompleted
	o.Status = entities.OrderStatusConfirmed
	o.PaymentTransactionID = paymentID
	o.PaymentSignature = payment.Sign(testSecret, testSessionID, paymentID)
	return o
}

func validRequest() entities.VerifyRequest {
	return entities.VerifyRequest{
		OrderID: testOrderID,
		Callback: entities.PaymentCallback{
			ExternalOrderID:   testSessionID,
			ExternalPaymentID: testPaymentID,
			Signature:         payment.Sign(testSecret, testSessionID, testPaymentID),
		},
	}
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	type MockBehavior func(orders *mocks.MockOrderRepo, notifier *mocks.MockNotifier)

	dbError := errors.New("db error")

	testCases := []struct {
		name         string
		req          func() entities.VerifyRequest
		mockBehavior MockBehavior
		want         entities.Order
		wantErr      error
	}{
		{
			name: "valid signature confirms the order",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, notifier *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(pendingOrder(), nil).Once()
				orders.EXPECT().
					CompletePayment(mock.Anything, testOrderID, testSessionID, testPaymentID, validRequest().Callback.Signature).
					Return(true, nil).Once()
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(confirmedOrder(testPaymentID), nil).Once()
				notifier.EXPECT().Enqueue(confirmedOrder(testPaymentID)).Return().Once()
			},
			want: confirmedOrder(testPaymentID),
		},
		{
			name: "tampered signature",
			req: func() entities.VerifyRequest {
				r := validRequest()
				r.Callback.Signature = "deadbeef"
				return r
			},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(pendingOrder(), nil).Once()
			},
			wantErr: entities.ErrInvalidSignature,
		},
		{
			name: "upper cased signature",
			req: func() entities.VerifyRequest {
				r := validRequest()
				r.Callback.Signature = strings.ToUpper(r.Callback.Signature)
				return r
			},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(pendingOrder(), nil).Once()
			},
			wantErr: entities.ErrInvalidSignature,
		},
		{
			name: "signed for another session",
			req: func() entities.VerifyRequest {
				r := validRequest()
				r.Callback.ExternalOrderID = "order_Other"
				r.Callback.Signature = payment.Sign(testSecret, "order_Other", testPaymentID)
				return r
			},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(pendingOrder(), nil).Once()
			},
			wantErr: entities.ErrInvalidSignature,
		},
		{
			name: "order without payment session",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				o := pendingOrder()
				o.PaymentSessionID = ""
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(o, nil).Once()
			},
			wantErr: entities.ErrInvalidSignature,
		},
		{
			name: "repeat of a verified payment",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(confirmedOrder(testPaymentID), nil).Once()
			},
			want: confirmedOrder(testPaymentID),
		},
		{
			name: "already paid by another payment",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(confirmedOrder("pay_Other"), nil).Once()
			},
			wantErr: entities.ErrPaymentConflict,
		},
		{
			name: "lost the race to a concurrent verification",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(pendingOrder(), nil).Once()
				orders.EXPECT().CompletePayment(mock.Anything, testOrderID, testSessionID, testPaymentID, mock.Anything).
					Return(false, nil).Once()
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(confirmedOrder(testPaymentID), nil).Once()
			},
			want: confirmedOrder(testPaymentID),
		},
		{
			name: "cancelled order",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				cancelled := pendingOrder()
				cancelled.Status = entities.OrderStatusCancelled
				cancelled.PaymentStatus = entities.PaymentStatusCancelled

				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(cancelled, nil).Once()
				orders.EXPECT().CompletePayment(mock.Anything, testOrderID, testSessionID, testPaymentID, mock.Anything).
					Return(false, nil).Once()
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(cancelled, nil).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
		{
			name: "order not found",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "update fails",
			req:  validRequest,
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockNotifier) {
				orders.EXPECT().GetOrderByID(mock.Anything, testOrderID).Return(pendingOrder(), nil).Once()
				orders.EXPECT().CompletePayment(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(false, dbError).Once()
			},
			wantErr: dbError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := mocks.NewMockOrderRepo(t)
			notifier := mocks.NewMockNotifier(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			tc.mockBehavior(orders, notifier)

			svc := service.NewPaymentService(logger, orders, payment.NewVerifier(testSecret), notifier)

			got, err := svc.VerifyPayment(context.Background(), tc.req())

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// memOrderRepo applies CompletePayment with the same guard the SQL update uses.
// Tests may put any order state in it.
type memOrderRepo struct {
	mu    sync.Mutex
	order entities.Order
}

func (r *memOrderRepo) GetOrderByID(_ context.Context, orderID string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if orderID != r.order.ID {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return r.order, nil
}

func (r *memOrderRepo) SaveOrder(context.Context, entities.Order) error { return nil }

func (r *memOrderRepo) SaveItems(context.Context, string, []entities.OrderItem) error { return nil }

func (r *memOrderRepo) SetPaymentSession(context.Context, string, string) error { return nil }

func (r *memOrderRepo) CompletePayment(_ context.Context, orderID, sessionID, paymentID, signature string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if orderID != r.order.ID || sessionID != r.order.PaymentSessionID || !r.order.AwaitsPayment() {
		return false, nil
	}
	r.order.PaymentStatus = entities.PaymentStatusCompleted
	r.order.Status = entities.OrderStatusConfirmed
	r.order.PaymentTransactionID = paymentID
	r.order.PaymentSignature = signature
	return true, nil
}

func TestPaymentService_VerifyPayment_ConcurrentDuplicates(t *testing.T) {
	repo := &memOrderRepo{order: pendingOrder()}
	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Enqueue(mock.Anything).Return().Once()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := service.NewPaymentService(logger, repo, payment.NewVerifier(testSecret), notifier)

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Go(func() {
			o, err := svc.VerifyPayment(context.Background(), validRequest())
			if err == nil && o.PaymentStatus != entities.PaymentStatusCompleted {
				err = errors.New("verification returned a non-completed order")
			}
			errs <- err
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	final, err := repo.GetOrderByID(context.Background(), testOrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusCompleted, final.PaymentStatus)
	assert.Equal(t, entities.OrderStatusConfirmed, final.Status)
	assert.Equal(t, testPaymentID, final.PaymentTransactionID)
}

func TestPaymentService_VerifyPayment_RejectedLeavesOrderPending(t *testing.T) {
	repo := &memOrderRepo{order: pendingOrder()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewPaymentService(logger, repo, payment.NewVerifier(testSecret), mocks.NewMockNotifier(t))

	req := validRequest()
	req.Callback.Signature = "deadbeef"

	_, err := svc.VerifyPayment(context.Background(), req)
	require.ErrorIs(t, err, entities.ErrInvalidSignature)

	o, err := repo.GetOrderByID(context.Background(), testOrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, entities.OrderStatusPending, o.Status)
	assert.Empty(t, o.PaymentTransactionID)
}

func TestPaymentService_VerifyPayment_CancelledOrderNotConfirmed(t *testing.T) {
	cancelled := pendingOrder()
	cancelled.Status = entities.OrderStatusCancelled
	repo := &memOrderRepo{order: cancelled}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewPaymentService(logger, repo, payment.NewVerifier(testSecret), mocks.NewMockNotifier(t))

	_, err := svc.VerifyPayment(context.Background(), validRequest())
	require.ErrorIs(t, err, entities.ErrOrderNotPayable)

	o, err := repo.GetOrderByID(context.Background(), testOrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusCancelled, o.Status)
	assert.Equal(t, entities.PaymentStatusPending, o.PaymentStatus)
	assert.Empty(t, o.PaymentSignature)
}
