// Package metrics provides Prometheus metrics for the Sneaker Tracker application.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sneaker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sneaker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sneaker_http_rate_limited_total",
			Help: "Mutating requests rejected by the rate limiter",
		},
	)

	// Command Metrics
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sneaker_commands_total",
			Help: "Commands dispatched to the view controller",
		},
		[]string{"command", "result"}, // result: "ok", "invalid", "error"
	)

	DetailCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sneaker_detail_cache_requests_total",
			Help: "Detail view-model cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Collection Metrics
	CatalogShoes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sneaker_catalog_shoes",
			Help: "Number of shoes in the merged collection",
		},
	)

	WatchlistSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sneaker_watchlist_size",
			Help: "Number of ids on the watchlist",
		},
	)

	InventoryByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sneaker_inventory_shoes",
			Help: "Number of custom shoes by inventory status",
		},
		[]string{"status"},
	)

	// Storage Metrics
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sneaker_storage_operations_total",
			Help: "Persistence operations by driver, operation and result",
		},
		[]string{"driver", "op", "result"}, // op: "load", "save"; result: "ok", "error"
	)

	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sneaker_storage_operation_duration_seconds",
			Help:    "Persistence operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"driver", "op"},
	)
)
