// Package observability holds the Prometheus collector and the OpenTelemetry
// tracer provider.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "offmind"

// Collector holds all Prometheus metrics of the service. Each collector owns
// its registry, so tests can create as many as they need.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	BoardMoves     *prometheus.CounterVec
	ItemsCaptured  prometheus.Counter
	MagicLinksSent *prometheus.CounterVec
}

// NewCollector creates a collector with Go runtime and process metrics
// registered alongside the service metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BoardMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "board_moves_total",
			Help:      "Board drops by resulting move and outcome",
		}, []string{"move", "result"}),
		ItemsCaptured: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_captured_total",
			Help:      "Total number of captured items",
		}),
		MagicLinksSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "magic_links_requested_total",
			Help:      "Magic-link requests by result",
		}, []string{"result"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.BoardMoves,
		c.ItemsCaptured,
		c.MagicLinksSent,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveMove records one board drop.
func (c *Collector) ObserveMove(move string, failed bool) {
	result := "ok"
	if failed {
		result = "failed"
	}
	c.BoardMoves.WithLabelValues(move, result).Inc()
}

// ObserveMagicLink records one magic-link request.
func (c *Collector) ObserveMagicLink(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.MagicLinksSent.WithLabelValues(result).Inc()
}

// ObserveCapture records one captured item.
func (c *Collector) ObserveCapture() { c.ItemsCaptured.Inc() }
