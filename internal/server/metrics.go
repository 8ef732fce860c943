package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/happy-scan/happy-scan/internal/assets"
	"github.com/happy-scan/happy-scan/internal/qr"
)

type metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	assetsServed prometheus.Counter
	qrGenerated  prometheus.Counter
	failures     *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "happy_scan_http_requests_total",
				Help: "HTTP requests handled, labeled by status code and method",
			},
			[]string{"code", "method"},
		),
		assetsServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "happy_scan_assets_served_total",
			Help: "Images streamed in full",
		}),
		qrGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "happy_scan_qr_generated_total",
			Help: "QR codes rendered",
		}),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "happy_scan_failures_total",
				Help: "Requests that ended in an error, labeled by kind",
			},
			[]string{"kind"},
		),
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, assets.ErrNoAssets):
		return "no_assets"
	case errors.Is(err, assets.ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, assets.ErrReadFailure):
		return "read_failure"
	case errors.Is(err, qr.ErrGeneration):
		return "qr_generation"
	default:
		return "other"
	}
}
