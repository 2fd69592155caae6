package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ImportsTotal        *prometheus.CounterVec
	FetchDuration       prometheus.Histogram
	ModelAttemptsTotal  *prometheus.CounterVec

	initOnce sync.Once
)

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		ImportsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_imports_total",
				Help: "Total number of recipe import attempts by outcome.",
			},
			[]string{"outcome"}, // "success" or an import error kind
		)

		FetchDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipe_import_fetch_duration_seconds",
				Help:    "Duration of source page fetches.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 15},
			},
		)

		ModelAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_import_model_attempts_total",
				Help: "Completion attempts per model and result.",
			},
			[]string{"model", "result"}, // result: success, rate_limited, auth, error
		)
	})
}
