package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	mocks "github.com/SergeyBogomolovv/storefront-checkout/internal/service/mocks"
	txMocks "github.com/SergeyBogomolovv/storefront-checkout/pkg/trm/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var serum = entities.Product{
	ID:       "p1",
	Name:     "Vitamin C Serum",
	Slug:     "vitamin-c-serum",
	Price:    1299,
	IsActive: true,
	Category: entities.Category{ID: "c1", Name: "Serums", Slug: "serums"},
}

func orderRequest(method entities.PaymentMethod, items ...entities.RequestItem) entities.OrderRequest {
	return entities.OrderRequest{
		Items:         items,
		Customer:      entities.Customer{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "+919800000000"},
		PaymentMethod: method,
		ShippingAddress: entities.Address{
			FullName: "Asha Rao", AddressLine1: "12 MG Road", City: "Bengaluru",
			State: "KA", PostalCode: "560001", Country: "IN",
		},
	}
}

func passThroughTx(t *testing.T) *txMocks.MockManager {
	tx := txMocks.NewMockManager(t)
	tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(
			func(ctx context.Context, cb func(ctx context.Context) error) error {
				return cb(ctx)
			}).Maybe()
	return tx
}

func TestOrderService_CreateOrder(t *testing.T) {
	type MockBehavior func(orders *mocks.MockOrderRepo, products *mocks.MockProductRepo, provider *mocks.MockPaymentProvider)

	dbError := errors.New("db error")

	testCases := []struct {
		name         string
		req          entities.OrderRequest
		mockBehavior MockBehavior
		wantErr      error
		check        func(t *testing.T, o entities.Order)
	}{
		{
			name: "gateway order priced from catalog",
			// клиент прислал заниженную цену, она не должна влиять на итог
			req: orderRequest(entities.PaymentMethodRazorpay, entities.RequestItem{ProductID: "p1", Quantity: 2, Price: 1}),
			mockBehavior: func(orders *mocks.MockOrderRepo, products *mocks.MockProductRepo, provider *mocks.MockPaymentProvider) {
				products.EXPECT().ProductsByIDs(mock.Anything, []string{"p1"}).Return([]entities.Product{serum}, nil).Once()
				orders.EXPECT().
					SaveOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
						return o.Subtotal == 2598 && o.Shipping == 0 && o.Tax == 468 && o.Total == 3066 &&
							o.Status == entities.OrderStatusPending && o.PaymentStatus == entities.PaymentStatusPending
					})).
					Return(nil).Once()
				orders.EXPECT().
					SaveItems(mock.Anything, mock.Anything, []entities.OrderItem{
						{ProductID: "p1", Name: "Vitamin C Serum", Price: 1299, Quantity: 2, Total: 2598},
					}).
					Return(nil).Once()
				provider.EXPECT().
					CreateSession(mock.Anything, mock.MatchedBy(func(r entities.SessionRequest) bool {
						return r.Amount == 3066 && r.Currency == "INR" && strings.HasPrefix(r.Receipt, "ORD-")
					})).
					Return(entities.PaymentSession{ID: "order_Rzp1", Amount: 3066, Currency: "INR"}, nil).Once()
				orders.EXPECT().SetPaymentSession(mock.Anything, mock.Anything, "order_Rzp1").Return(nil).Once()
			},
			check: func(t *testing.T, o entities.Order) {
				assert.EqualValues(t, 2598, o.Subtotal)
				assert.EqualValues(t, 0, o.Shipping)
				assert.EqualValues(t, 468, o.Tax)
				assert.EqualValues(t, 3066, o.Total)
				assert.Equal(t, "order_Rzp1", o.PaymentSessionID)
				assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{6}$`, o.OrderNumber)
				assert.NotEmpty(t, o.ID)
			},
		},
		{
			name: "cod order skips the gateway",
			req:  orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "p1", Quantity: 1, Price: 1299}),
			mockBehavior: func(orders *mocks.MockOrderRepo, products *mocks.MockProductRepo, _ *mocks.MockPaymentProvider) {
				products.EXPECT().ProductsByIDs(mock.Anything, []string{"p1"}).Return([]entities.Product{serum}, nil).Once()
				orders.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil).Once()
				orders.EXPECT().SaveItems(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, o entities.Order) {
				assert.Empty(t, o.PaymentSessionID)
				assert.Equal(t, entities.PaymentMethodCOD, o.PaymentMethod)
				assert.EqualValues(t, 1299+234, o.Total)
			},
		},
		{
			name: "duplicate lines are merged",
			req: orderRequest(entities.PaymentMethodCOD,
				entities.RequestItem{ProductID: "p1", Quantity: 1},
				entities.RequestItem{ProductID: "p1", Quantity: 2},
			),
			mockBehavior: func(orders *mocks.MockOrderRepo, products *mocks.MockProductRepo, _ *mocks.MockPaymentProvider) {
				products.EXPECT().ProductsByIDs(mock.Anything, []string{"p1"}).Return([]entities.Product{serum}, nil).Once()
				orders.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil).Once()
				orders.EXPECT().SaveItems(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, o entities.Order) {
				require.Len(t, o.Items, 1)
				assert.Equal(t, 3, o.Items[0].Quantity)
				assert.EqualValues(t, 3897, o.Subtotal)
			},
		},
		{
			name: "gateway failure",
			req:  orderRequest(entities.PaymentMethodRazorpay, entities.RequestItem{ProductID: "p1", Quantity: 2, Price: 1299}),
			mockBehavior: func(orders *mocks.MockOrderRepo, products *mocks.MockProductRepo, provider *mocks.MockPaymentProvider) {
				products.EXPECT().ProductsByIDs(mock.Anything, mock.Anything).Return([]entities.Product{serum}, nil).Once()
				orders.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil).Once()
				orders.EXPECT().SaveItems(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				provider.EXPECT().CreateSession(mock.Anything, mock.Anything).
					Return(entities.PaymentSession{}, errors.New("gateway timeout")).Once()
			},
			wantErr: entities.ErrPaymentSessionFailed,
		},
		{
			name:         "empty cart",
			req:          orderRequest(entities.PaymentMethodRazorpay),
			mockBehavior: func(*mocks.MockOrderRepo, *mocks.MockProductRepo, *mocks.MockPaymentProvider) {},
			wantErr:      entities.ErrEmptyCart,
		},
		{
			name:         "unknown payment method",
			req:          orderRequest("paypal", entities.RequestItem{ProductID: "p1", Quantity: 1}),
			mockBehavior: func(*mocks.MockOrderRepo, *mocks.MockProductRepo, *mocks.MockPaymentProvider) {},
			wantErr:      entities.ErrInvalidPaymentMethod,
		},
		{
			name:         "zero quantity",
			req:          orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "p1", Quantity: 0}),
			mockBehavior: func(*mocks.MockOrderRepo, *mocks.MockProductRepo, *mocks.MockPaymentProvider) {},
			wantErr:      entities.ErrInvalidQuantity,
		},
		{
			name: "product not found",
			req:  orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "missing", Quantity: 1}),
			mockBehavior: func(_ *mocks.MockOrderRepo, products *mocks.MockProductRepo, _ *mocks.MockPaymentProvider) {
				products.EXPECT().ProductsByIDs(mock.Anything, []string{"missing"}).Return(nil, nil).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
		{
			name: "inactive product",
			req:  orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "p1", Quantity: 1}),
			mockBehavior: func(_ *mocks.MockOrderRepo, products *mocks.MockProductRepo, _ *mocks.MockPaymentProvider) {
				inactive := serum
				inactive.IsActive = false
				products.EXPECT().ProductsByIDs(mock.Anything, mock.Anything).Return([]entities.Product{inactive}, nil).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
		{
			name: "product without category",
			req:  orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "p1", Quantity: 1}),
			mockBehavior: func(_ *mocks.MockOrderRepo, products *mocks.MockProductRepo, _ *mocks.MockPaymentProvider) {
				orphan := serum
				orphan.Category = entities.Category{}
				products.EXPECT().ProductsByIDs(mock.Anything, mock.Anything).Return([]entities.Product{orphan}, nil).Once()
			},
			wantErr: entities.ErrCategoryNotFound,
		},
		{
			name: "save items fails",
			req:  orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "p1", Quantity: 1}),
			mockBehavior: func(orders *mocks.MockOrderRepo, products *mocks.MockProductRepo, _ *mocks.MockPaymentProvider) {
				products.EXPECT().ProductsByIDs(mock.Anything, mock.Anything).Return([]entities.Product{serum}, nil).Once()
				orders.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil)
				orders.EXPECT().SaveItems(mock.Anything, mock.Anything, mock.Anything).Return(dbError)
			},
			wantErr: dbError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := mocks.NewMockOrderRepo(t)
			products := mocks.NewMockProductRepo(t)
			provider := mocks.NewMockPaymentProvider(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			tc.mockBehavior(orders, products, provider)

			svc := service.NewOrderService(logger, passThroughTx(t), orders, products, provider, defaultPricing(t), "INR")

			order, err := svc.CreateOrder(context.Background(), tc.req)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, order)
			}
		})
	}
}

func TestOrderService_CreateOrder_RegeneratesOrderNumber(t *testing.T) {
	orders := mocks.NewMockOrderRepo(t)
	products := mocks.NewMockProductRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var numbers []string
	products.EXPECT().ProductsByIDs(mock.Anything, mock.Anything).Return([]entities.Product{serum}, nil).Once()
	orders.EXPECT().SaveOrder(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, o entities.Order) error {
			numbers = append(numbers, o.OrderNumber)
			if len(numbers) == 1 {
				return entities.ErrDuplicateOrderNumber
			}
			return nil
		}).Times(2)
	orders.EXPECT().SaveItems(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	svc := service.NewOrderService(logger, passThroughTx(t), orders, products, mocks.NewMockPaymentProvider(t), defaultPricing(t), "INR")

	order, err := svc.CreateOrder(context.Background(),
		orderRequest(entities.PaymentMethodCOD, entities.RequestItem{ProductID: "p1", Quantity: 1}))
	require.NoError(t, err)

	require.Len(t, numbers, 2)
	assert.NotEqual(t, numbers[0], numbers[1])
	assert.Equal(t, numbers[1], order.OrderNumber)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	validOrder := entities.Order{ID: "8d0f5f0e-8d43-4a7b-bb3e-0f6a1d1f6c11", OrderNumber: "ORD-20261019-ABC123"}

	testCases := []struct {
		name         string
		orderID      string
		mockBehavior func(orders *mocks.MockOrderRepo)
		want         entities.Order
		wantErr      error
	}{
		{
			name:    "success",
			orderID: validOrder.ID,
			mockBehavior: func(orders *mocks.MockOrderRepo) {
				orders.EXPECT().GetOrderByID(mock.Anything, validOrder.ID).Return(validOrder, nil).Once()
			},
			want: validOrder,
		},
		{
			name:    "not found is not retried",
			orderID: "missing",
			mockBehavior: func(orders *mocks.MockOrderRepo) {
				orders.EXPECT().GetOrderByID(mock.Anything, "missing").Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name:    "second attempt",
			orderID: validOrder.ID,
			mockBehavior: func(orders *mocks.MockOrderRepo) {
				orders.EXPECT().GetOrderByID(mock.Anything, validOrder.ID).Return(entities.Order{}, errors.New("conn reset")).Once()
				orders.EXPECT().GetOrderByID(mock.Anything, validOrder.ID).Return(validOrder, nil).Once()
			},
			want: validOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := mocks.NewMockOrderRepo(t)
			tc.mockBehavior(orders)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			svc := service.NewOrderService(logger, txMocks.NewMockManager(t), orders,
				mocks.NewMockProductRepo(t), mocks.NewMockPaymentProvider(t), defaultPricing(t), "INR")

			got, err := svc.GetOrderByID(context.Background(), tc.orderID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
