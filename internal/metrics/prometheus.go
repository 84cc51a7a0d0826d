// Package metrics holds the service's prometheus collectors and the echo
// middleware that feeds the HTTP ones.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "supply"

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// TransitionsTotal counts committed status changes by target status.
	// Every status has a single predecessor, so the target names the edge.
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Committed order status transitions",
		},
		[]string{"to"},
	)

	// PreparationItemsTotal counts committed preparation lines by outcome
	// (fulfilled, short, unavailable).
	PreparationItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preparation_items_total",
			Help:      "Items of committed preparations by outcome",
		},
		[]string{"outcome"},
	)

	// IdempotentReplaysTotal counts creates answered from the idempotency store.
	IdempotentReplaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Order creations answered with a previously created order",
		},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit_name"},
	)

	// CircuitBreakerFailures tracks calls failed or refused by a breaker
	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_failures_total",
			Help:      "Total number of circuit breaker failures",
		},
		[]string{"circuit_name"},
	)

	// DigestRunsTotal counts shortage digest job runs by result.
	DigestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortage_digest_runs_total",
			Help:      "Shortage digest job runs",
		},
		[]string{"result"},
	)
)

// ObservePreparation records the line outcomes of one committed preparation.
func ObservePreparation(fulfilled, short, unavailable int) {
	PreparationItemsTotal.WithLabelValues("fulfilled").Add(float64(fulfilled))
	PreparationItemsTotal.WithLabelValues("short").Add(float64(short))
	PreparationItemsTotal.WithLabelValues("unavailable").Add(float64(unavailable))
}

// Middleware records request count and latency per route template, so
// /orders/:orderId is one series regardless of the id.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			RequestsTotal.WithLabelValues(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
			).Inc()
			RequestDuration.WithLabelValues(
				c.Request().Method,
				route,
			).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

// Handler serves the default registry in the prometheus text format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
