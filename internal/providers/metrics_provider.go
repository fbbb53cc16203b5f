package providers

import (
	"posterd/internal/ledger"
	"posterd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRendersTotal(mode, outcome string)
	ObserveRenderDuration(mode string, duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	rendersTotal    *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRendersTotal(mode, outcome string) {
	m.rendersTotal.WithLabelValues(mode, outcome).Inc()
}

func (m *MetricsProvider) ObserveRenderDuration(mode string, duration time.Duration) {
	m.renderDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store ledger.LedgerInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "posterd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "posterd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posterd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posterd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		rendersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "posterd_renders_total",
			Help: "Total number of render attempts by mode and outcome",
		}, []string{"mode", "outcome"}),

		renderDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "posterd_render_duration_seconds",
			Help:    "Duration of render provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "posterd_ledger_users",
		Help: "Number of users with at least one generated poster",
	}, func() float64 {
		return float64(store.Users())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRendersTotal(_, _ string)                      {}
func (n *noopMetrics) ObserveRenderDuration(_ string, _ time.Duration)  {}
