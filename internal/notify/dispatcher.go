// Package notify delivers best-effort messages about confirmed orders.
// Nothing here may fail or slow down the request that confirmed the order.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

// Sender is one delivery channel for a confirmed order.
type Sender interface {
	Name() string
	Send(ctx context.Context, order entities.Order) error
}

// Dispatcher queues confirmed orders and fans them out to every sender on a
// single background worker.
type Dispatcher struct {
	logger  *slog.Logger
	senders []Sender
	timeout time.Duration

	// mu orders Enqueue against Close: once closed is set nothing enters queue
	mu     sync.RWMutex
	closed bool
	queue  chan entities.Order
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewDispatcher(logger *slog.Logger, cfg config.Notifications, senders ...Sender) *Dispatcher {
	return &Dispatcher{
		logger:  logger.With(slog.String("service", "notify")),
		senders: senders,
		timeout: cfg.Timeout,
		queue:   make(chan entities.Order, cfg.QueueSize),
		done:    make(chan struct{}),
	}
}

// Enqueue never blocks. When the queue is full the order is dropped.
func (d *Dispatcher) Enqueue(order entities.Order) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		notificationsDropped.Inc()
		d.logger.Error("dispatcher closed, notification dropped", slog.String("order_id", order.ID))
		return
	}

	select {
	case d.queue <- order:
		queueLength.Set(float64(len(d.queue)))
	default:
		notificationsDropped.Inc()
		d.logger.Error("notification queue is full, notification dropped",
			slog.String("order_id", order.ID),
			slog.String("order_number", order.OrderNumber),
		)
	}
}

func (d *Dispatcher) Start(ctx context.Context) error {
	d.wg.Go(d.run)
	d.logger.Info("notification dispatcher started", slog.Int("senders", len(d.senders)))
	return nil
}

func (d *Dispatcher) run() {
	for {
		select {
		case order := <-d.queue:
			queueLength.Set(float64(len(d.queue)))
			d.deliver(order)
		case <-d.done:
			d.drain()
			return
		}
	}
}

// drain delivers what is already queued at shutdown.
func (d *Dispatcher) drain() {
	for {
		select {
		case order := <-d.queue:
			d.deliver(order)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(order entities.Order) {
	for _, s := range d.senders {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		start := time.Now()
		err := s.Send(ctx, order)
		cancel()

		deliveryDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			deliveries.WithLabelValues(s.Name(), "error").Inc()
			d.logger.Error("failed to deliver notification",
				slog.String("sender", s.Name()),
				slog.String("order_id", order.ID),
				slog.Any("error", err),
			)
			continue
		}
		deliveries.WithLabelValues(s.Name(), "ok").Inc()
	}
}

// Close stops accepting orders and waits for the queued ones to be delivered.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.done)
	}
	d.mu.Unlock()

	d.wg.Wait()
	return nil
}
