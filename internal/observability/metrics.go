package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation.
	HTTPRequestsInFlight prometheus.Gauge

	// OpenWeatherMap API call rate. Watch for: error vs success ratio.
	WeatherAPICallsTotal *prometheus.CounterVec

	// External API latency per request. Watch for: p95 > 2s (upstream degradation).
	WeatherAPIDuration *prometheus.HistogramVec

	// Upstream failures by category. Users only ever see "Location not found"; this is where the cause lives.
	WeatherAPIErrorsTotal *prometheus.CounterVec

	// Lookup outcomes (success, not_found). Watch for: not_found ratio climbing after a key rotation.
	LookupsTotal *prometheus.CounterVec

	// Background chosen per successful lookup.
	BackgroundSelectionsTotal *prometheus.CounterVec

	// Session store failures by operation (get, set). Watch for: memcached unreachable.
	SessionStoreErrorsTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of OpenWeatherMap API calls",
		},
		[]string{"status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "OpenWeatherMap API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "Failed weather lookups by error category",
		},
		[]string{"category"},
	)
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookupsTotal",
			Help: "Total number of weather lookups by outcome",
		},
		[]string{"outcome"},
	)
	BackgroundSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backgroundSelectionsTotal",
			Help: "Backgrounds selected for successful lookups",
		},
		[]string{"background"},
	)
	SessionStoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessionStoreErrorsTotal",
			Help: "Session store errors by operation",
		},
		[]string{"operation"},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		LookupsTotal, BackgroundSelectionsTotal,
		SessionStoreErrorsTotal,
	)
}

// RecordLookup records the outcome of one reconciled lookup.
// background is ignored unless outcome is "success".
func RecordLookup(outcome, background string) {
	LookupsTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		BackgroundSelectionsTotal.WithLabelValues(background).Inc()
	}
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
