package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service registers. A custom registry is
// injected so tests can create isolated instances.
type Metrics struct {
	SearchTotal       *prometheus.CounterVec
	StaleSearchDrops  prometheus.Counter
	ReservationsTotal *prometheus.CounterVec

	CatalogLatency      *prometheus.HistogramVec
	CatalogErrors       *prometheus.CounterVec
	CacheHitsTotal      prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	Registry *prometheus.Registry
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holidaze_search_total",
			Help: "Searches applied, labelled by query path (local or remote)",
		}, []string{"path"}),
		StaleSearchDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holidaze_search_stale_drops_total",
			Help: "Remote search responses discarded because newer criteria superseded them",
		}),
		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holidaze_reservations_total",
			Help: "Reservation attempts by outcome",
		}, []string{"outcome"}),
		CatalogLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "holidaze_catalog_latency_seconds",
			Help:    "Latency of remote catalog operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		CatalogErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holidaze_catalog_errors_total",
			Help: "Failed remote catalog operations",
		}, []string{"op"}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holidaze_cache_hits_total",
			Help: "Catalog reads served from the local cache",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		Registry: reg,
	}

	reg.MustRegister(
		m.SearchTotal,
		m.StaleSearchDrops,
		m.ReservationsTotal,
		m.CatalogLatency,
		m.CatalogErrors,
		m.CacheHitsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

func (m *Metrics) IncSearch(path string) {
	if m == nil {
		return
	}
	m.SearchTotal.WithLabelValues(path).Inc()
}

func (m *Metrics) IncStaleSearchDrop() {
	if m == nil {
		return
	}
	m.StaleSearchDrops.Inc()
}

func (m *Metrics) IncReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCatalogLatency(op string, seconds float64) {
	if m == nil {
		return
	}
	m.CatalogLatency.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) IncCatalogError(op string) {
	if m == nil {
		return
	}
	m.CatalogErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
