// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faktura_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "faktura_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faktura_renders_total",
		Help: "Invoice documents rendered, by outcome (ok, error, cached)",
	}, []string{"outcome"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "faktura_render_duration_seconds",
		Help:    "Time to produce an invoice document",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	QRFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "faktura_qr_fallbacks_total",
		Help: "Documents shipped with the QR placeholder after generation failed",
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faktura_cache_hits_total",
		Help: "Cache lookups by kind (render, template) and result (hit, miss)",
	}, []string{"kind", "result"})
)
