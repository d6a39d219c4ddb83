package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/google/uuid"
)

type OrderRepo interface {
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error
	SetPaymentSession(ctx context.Context, orderID, sessionID string) error

	// Меняет статус только если заказ ещё не оплачен, возвращает true если изменение сделал именно этот вызов
	CompletePayment(ctx context.Context, orderID, sessionID, paymentID, signature string) (bool, error)
}

type ProductRepo interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error)
}

type PaymentProvider interface {
	CreateSession(ctx context.Context, req entities.SessionRequest) (entities.PaymentSession, error)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	products  ProductRepo
	provider  PaymentProvider
	pricing   Pricing
	currency  string
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	products ProductRepo,
	provider PaymentProvider,
	pricing Pricing,
	currency string,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		orders:    orders,
		products:  products,
		provider:  provider,
		pricing:   pricing,
		currency:  currency,
	}
}

// CreateOrder turns a submitted cart into a PENDING order priced from the
// catalog. Gateway orders also get a payment session; if the gateway fails
// the order stays PENDING without one and ErrPaymentSessionFailed is returned.
func (s *orderService) CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.Order, error) {
	if len(req.Items) == 0 {
		return entities.Order{}, entities.ErrEmptyCart
	}
	if req.PaymentMethod != entities.PaymentMethodRazorpay && req.PaymentMethod != entities.PaymentMethodCOD {
		return entities.Order{}, entities.ErrInvalidPaymentMethod
	}

	items, subtotal, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return entities.Order{}, err
	}
	totals := s.pricing.Calculate(subtotal)

	now := time.Now().UTC()
	order := entities.Order{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Currency:        s.currency,
		Customer:        req.Customer,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		ShippingMethod:  req.ShippingMethod,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   entities.PaymentStatusPending,
		Status:          entities.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	save := func() error {
		order.OrderNumber = newOrderNumber(now)
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.orders.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.orders.SaveItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save order items: %w", err)
			}
			return nil
		})
	}
	if err := utils.Retry(utils.DefaultRetry, save, context.Canceled, context.DeadlineExceeded); err != nil {
		return entities.Order{}, err
	}

	ordersCreated.WithLabelValues(string(order.PaymentMethod)).Inc()
	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("payment_method", string(order.PaymentMethod)),
		slog.Int64("total", order.Total),
	)

	if !order.PaymentMethod.UsesGateway() {
		return order, nil
	}

	session, err := s.provider.CreateSession(ctx, entities.SessionRequest{
		OrderID:  order.ID,
		Receipt:  order.OrderNumber,
		Amount:   order.Total,
		Currency: order.Currency,
	})
	if err != nil {
		paymentSessionsFailed.Inc()
		s.logger.ErrorContext(ctx, "failed to create payment session",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
		return entities.Order{}, fmt.Errorf("%w: %v", entities.ErrPaymentSessionFailed, err)
	}

	if err := s.orders.SetPaymentSession(ctx, order.ID, session.ID); err != nil {
		return entities.Order{}, fmt.Errorf("failed to store payment session: %w", err)
	}
	order.PaymentSessionID = session.ID

	return order, nil
}

// priceItems merges duplicate lines and prices them from the catalog.
// Client prices are only compared for logging.
func (s *orderService) priceItems(ctx context.Context, reqItems []entities.RequestItem) ([]entities.OrderItem, int64, error) {
	quantities := make(map[string]int, len(reqItems))
	claimed := make(map[string]int64, len(reqItems))
	ids := make([]string, 0, len(reqItems))
	for _, it := range reqItems {
		if it.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w: product %s", entities.ErrInvalidQuantity, it.ProductID)
		}
		if _, ok := quantities[it.ProductID]; !ok {
			ids = append(ids, it.ProductID)
			claimed[it.ProductID] = it.Price
		}
		quantities[it.ProductID] += it.Quantity
	}

	var products []entities.Product
	err := utils.Retry(utils.DefaultRetry, func() error {
		var err error
		products, err = s.products.ProductsByIDs(ctx, ids)
		return err
	}, context.Canceled, context.DeadlineExceeded)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[string]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]entities.OrderItem, 0, len(ids))
	var subtotal int64
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return nil, 0, fmt.Errorf("%w: %s", entities.ErrProductNotFound, id)
		}
		if p.Category.ID == "" {
			return nil, 0, fmt.Errorf("%w: product %s", entities.ErrCategoryNotFound, id)
		}
		if claimed[id] != p.Price {
			s.logger.DebugContext(ctx, "client price differs from catalog",
				slog.String("product_id", id),
				slog.Int64("client_price", claimed[id]),
				slog.Int64("price", p.Price),
			)
		}

		qty := quantities[id]
		line := p.Price * int64(qty)
		items = append(items, entities.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			Total:     line,
		})
		subtotal += line
	}

	return items, subtotal, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.orders.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(utils.DefaultRetry, fn, entities.ErrOrderNotFound, context.Canceled); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// newOrderNumber builds the customer-facing number, e.g. ORD-20261019-4F2A9C.
func newOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), suffix)
}
