package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type AdminNotifier interface {
	NotifyNewOrder(ctx context.Context, summary entities.OrderSummary) error
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaHandler consumes orders.confirmed and tells the store operator about
// each new order.
type KafkaHandler struct {
	dlq      MessageWriter
	reader   MessageReader
	logger   *slog.Logger
	validate *validator.Validate
	notifier AdminNotifier
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, notifier AdminNotifier) *KafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaHandlerWithIO(logger, reader, dlq, notifier)
}

func NewKafkaHandlerWithIO(logger *slog.Logger, reader MessageReader, dlq MessageWriter, notifier AdminNotifier) *KafkaHandler {
	return &KafkaHandler{
		logger:   logger.With(slog.String("handler", "kafka")),
		reader:   reader,
		dlq:      dlq,
		validate: utils.NewValidator(),
		notifier: notifier,
	}
}

func (h *KafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		h.process(ctx, m)

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *KafkaHandler) process(ctx context.Context, m kafka.Message) {
	eventsInProgress.Inc()
	start := time.Now()
	defer func() {
		eventsInProgress.Dec()
		eventProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	if err := h.handleOrderConfirmed(ctx, m); err != nil {
		eventsFailed.Inc()
		h.logger.Error("failed to handle message", slog.Any("error", err), slog.String("key", string(m.Key)))

		// В библиотеке уже есть retry
		if err := h.WriteToDLQ(ctx, m); err != nil {
			h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
			return
		}
		eventsDLQ.Inc()
		return
	}
	eventsProcessed.Inc()
}

func (h *KafkaHandler) handleOrderConfirmed(ctx context.Context, m kafka.Message) error {
	var event OrderConfirmedMessage
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid event data: %w", err)
	}

	return h.notifier.NotifyNewOrder(ctx, OrderConfirmedJSONToEntity(event))
}

func (h *KafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	})
}

func (h *KafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
