package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/segmentio/kafka-go"
)

// OrderConfirmedEvent is the payload published to the orders.confirmed topic.
type OrderConfirmedEvent struct {
	OrderID       string           `json:"order_id"`
	OrderNumber   string           `json:"order_number"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	PaymentMethod string           `json:"payment_method"`
	Total         int64            `json:"total"`
	Currency      string           `json:"currency"`
	Items         []OrderEventItem `json:"items"`
	CreatedAt     time.Time        `json:"created_at"`
}

type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
}

func NewOrderConfirmedEvent(s entities.OrderSummary) OrderConfirmedEvent {
	items := make([]OrderEventItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, OrderEventItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Total:     it.Total,
		})
	}
	return OrderConfirmedEvent{
		OrderID:       s.OrderID,
		OrderNumber:   s.OrderNumber,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		PaymentMethod: string(s.PaymentMethod),
		Total:         s.Total,
		Currency:      s.Currency,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher announces confirmed orders on Kafka.
type EventPublisher struct {
	logger *slog.Logger
	writer MessageWriter
}

func NewEventPublisher(logger *slog.Logger, cfg config.Kafka) *EventPublisher {
	return NewEventPublisherWithWriter(logger, &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func NewEventPublisherWithWriter(logger *slog.Logger, w MessageWriter) *EventPublisher {
	return &EventPublisher{
		logger: logger.With(slog.String("sender", "kafka")),
		writer: w,
	}
}

func (p *EventPublisher) Name() string { return "order_confirmed_event" }

func (p *EventPublisher) Send(ctx context.Context, order entities.Order) error {
	value, err := json.Marshal(NewOrderConfirmedEvent(order.Summary()))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Ключ по заказу, чтобы все события одного заказа попадали в одну партицию
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to publish order confirmed event: %w", err)
	}

	p.logger.DebugContext(ctx, "order confirmed event published", slog.String("order_id", order.ID))
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
