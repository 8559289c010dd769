package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus metrics on a private registry
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Backend metrics
	BackendOps      *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	BreakerState    *prometheus.GaugeVec

	// Business metrics
	BoardMutations *prometheus.CounterVec
	Bookmarks      *prometheus.CounterVec
}

// NewCollector creates the collector with every metric registered under namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BackendOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_operations_total",
				Help:      "Record backend calls by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		BackendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_operation_duration_seconds",
				Help:      "Record backend call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
		BoardMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "board_mutations_total",
				Help:      "Investigation board mutations by kind",
			},
			[]string{"kind"},
		),
		Bookmarks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookmark_toggles_total",
				Help:      "Bookmark toggles by direction",
			},
			[]string{"action"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.BackendOps,
		c.BackendDuration,
		c.BreakerState,
		c.BoardMutations,
		c.Bookmarks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (tests gather from it)
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveBackend records one backend call
func (c *Collector) ObserveBackend(operation string, start time.Time, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.BackendOps.WithLabelValues(operation, status).Inc()
	c.BackendDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// BoardMutation counts a board change (note, document, move, delete, connect, clear)
func (c *Collector) BoardMutation(kind string) {
	if c == nil {
		return
	}
	c.BoardMutations.WithLabelValues(kind).Inc()
}

// BookmarkToggled counts a bookmark add or remove
func (c *Collector) BookmarkToggled(added bool) {
	if c == nil {
		return
	}
	action := "removed"
	if added {
		action = "added"
	}
	c.Bookmarks.WithLabelValues(action).Inc()
}

// SetBreakerState publishes a breaker's state
func (c *Collector) SetBreakerState(name string, state float64) {
	if c == nil {
		return
	}
	c.BreakerState.WithLabelValues(name).Set(state)
}
