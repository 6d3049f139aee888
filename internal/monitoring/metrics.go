package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daytrade_analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"symbol"},
	)

	signalScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "daytrade_signal_score",
			Help: "Latest composite signal score per symbol",
		},
		[]string{"symbol"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daytrade_cache_lookups_total",
			Help: "Cache lookups by record kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daytrade_errors_total",
			Help: "Total number of errors by category",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(signalScore)
	prometheus.MustRegister(cacheLookups)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler serves the Prometheus scrape endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP implements http.Handler.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordAnalysis counts one analysis run and publishes its score.
func RecordAnalysis(symbol string, score int) {
	analysesTotal.WithLabelValues(symbol).Inc()
	signalScore.WithLabelValues(symbol).Set(float64(score))
}

// RecordCacheLookup counts a cache hit or miss for a record kind.
func RecordCacheLookup(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.WithLabelValues(kind, outcome).Inc()
}

// RecordError counts an error by category.
func RecordError(category string) {
	errorsTotal.WithLabelValues(category).Inc()
}
