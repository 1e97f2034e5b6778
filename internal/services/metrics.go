package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors of the search and recommendation
// services.
type Metrics struct {
	searchRequests         *prometheus.CounterVec
	searchLatency          *prometheus.HistogramVec
	searchResults          *prometheus.HistogramVec
	recommendationRequests *prometheus.CounterVec
	catalogResources       prometheus.Gauge
	catalogReloads         *prometheus.CounterVec
	healthCheckStatus      *prometheus.GaugeVec
}

// NewMetrics registers the collectors with reg. Use a fresh registry per
// test; production passes prometheus.DefaultRegisterer exactly once.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		searchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by operation",
		}, []string{"operation"}),

		searchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "search_latency_seconds",
			Help:    "Search latency in seconds by operation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"operation"}),

		searchResults: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "search_results_count",
			Help:    "Number of results returned by operation",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		}, []string{"operation"}),

		recommendationRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by strategy",
		}, []string{"strategy"}),

		catalogResources: factory.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_resources",
			Help: "Number of resources in the active catalog snapshot",
		}),

		catalogReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Catalog reloads by outcome",
		}, []string{"status"}),

		healthCheckStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "health_check_status",
			Help: "Health check status (1 = healthy, 0 = unhealthy)",
		}, []string{"service"}),
	}
}

func (m *Metrics) observeSearch(operation string, start time.Time, results int) {
	m.searchRequests.WithLabelValues(operation).Inc()
	m.searchLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.searchResults.WithLabelValues(operation).Observe(float64(results))
}

func (m *Metrics) observeRecommendation(strategy string) {
	m.recommendationRequests.WithLabelValues(strategy).Inc()
}

func (m *Metrics) observeReload(ok bool, resources int) {
	if !ok {
		m.catalogReloads.WithLabelValues("error").Inc()
		return
	}
	m.catalogReloads.WithLabelValues("success").Inc()
	m.catalogResources.Set(float64(resources))
}

func (m *Metrics) setHealth(service string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	m.healthCheckStatus.WithLabelValues(service).Set(value)
}
