package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Cache lookups by driver and result (hit, miss, error).",
	}, []string{"driver", "result"})

	evictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Entries dropped from the in-process cache by reason.",
	}, []string{"reason"})
)
