package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "orders_created_total",
		Help:      "Total number of orders persisted, by payment method.",
	}, []string{"payment_method"})

	paymentSessionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "payment_sessions_failed_total",
		Help:      "Total number of payment sessions the gateway refused or failed to create.",
	})

	paymentVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "payment_verifications_total",
		Help:      "Payment verification attempts by outcome.",
	}, []string{"outcome"})

	signatureMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "payment_signature_mismatches_total",
		Help:      "Total number of payment callbacks whose signature did not verify.",
	})

	catalogCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "catalog",
		Name:      "cache_lookups_total",
		Help:      "Product cache lookups by result.",
	}, []string{"result"})
)
