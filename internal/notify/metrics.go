package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "Notification deliveries by sender and result.",
	}, []string{"sender", "result"})

	deliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "delivery_duration_seconds",
		Help:      "Time spent in a single sender.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"sender"})

	notificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "dropped_total",
		Help:      "Confirmed orders whose notifications were dropped.",
	})

	queueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "queue_length",
		Help:      "Orders waiting for notification delivery.",
	})
)
