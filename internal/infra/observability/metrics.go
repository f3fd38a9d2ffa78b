package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the watch-mode /metrics endpoint can serve it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	unauthorizedTotal prometheus.Counter
	breakerOpenTotal  *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	pollTicks         *prometheus.CounterVec
	pollSuppressed    *prometheus.CounterVec
}

// ClientSnapshot is the aggregate view printed when watch mode exits.
type ClientSnapshot struct {
	RequestsOK        int64
	RequestsFailed    int64
	UnauthorizedTotal int64
	CacheHitRate      float64
	PollTicks         int64
	PollSuppressed    int64
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// client metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldos_request_duration_seconds",
				Help:    "Duration of backend requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldos_requests_total",
				Help: "Total backend requests by outcome.",
			},
			[]string{"status"},
		),
		unauthorizedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fieldos_unauthorized_total",
				Help: "Total 401 responses that forced a credential wipe.",
			},
		),
		breakerOpenTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldos_breaker_open_total",
				Help: "Requests rejected by an open circuit breaker.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldos_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldos_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		pollTicks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldos_poll_ticks_total",
				Help: "Poller ticks that issued a fetch.",
			},
			[]string{"poller"},
		),
		pollSuppressed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldos_poll_suppressed_total",
				Help: "Poller ticks suppressed because the previous fetch was still in flight.",
			},
			[]string{"poller"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// IncrUnauthorized counts a 401 response.
func (m *Metrics) IncrUnauthorized() {
	m.unauthorizedTotal.Inc()
}

// IncrBreakerOpen counts a request rejected by an open breaker.
func (m *Metrics) IncrBreakerOpen(service string) {
	m.breakerOpenTotal.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrPollTick counts an executed poll tick.
func (m *Metrics) IncrPollTick(poller string) {
	m.pollTicks.WithLabelValues(poller).Inc()
}

// IncrPollSuppressed counts a suppressed poll tick.
func (m *Metrics) IncrPollSuppressed(poller string) {
	m.pollSuppressed.WithLabelValues(poller).Inc()
}

// Snapshot gathers current counter values for display.
// Prometheus counters expose cumulative values.
func (m *Metrics) Snapshot() *ClientSnapshot {
	ok := getCounterValue(m.requestsTotal, "success")
	failed := getCounterValue(m.requestsTotal, "error")
	hits := getCounterValue(m.cacheHits, "lists")
	misses := getCounterValue(m.cacheMisses, "lists")

	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	var unauthorized float64
	mc := &dto.Metric{}
	if err := m.unauthorizedTotal.Write(mc); err == nil && mc.Counter != nil && mc.Counter.Value != nil {
		unauthorized = *mc.Counter.Value
	}

	return &ClientSnapshot{
		RequestsOK:        int64(ok),
		RequestsFailed:    int64(failed),
		UnauthorizedTotal: int64(unauthorized),
		CacheHitRate:      hitRate,
		PollTicks:         int64(getCounterValue(m.pollTicks, "jobs")),
		PollSuppressed:    int64(getCounterValue(m.pollSuppressed, "jobs")),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
