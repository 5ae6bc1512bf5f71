// Package metrics provides Prometheus metrics for the microsite backend.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"yatstats/pkg/database"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// View build outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeCacheHit = "cache_hit"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Manager owns every collector. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	viewBuilds        *prometheus.CounterVec
	viewBuildDuration prometheus.Histogram

	storeQueries       *prometheus.CounterVec
	storeQueryDuration prometheus.Histogram

	poolTotalConns    prometheus.Gauge
	poolIdleConns     prometheus.Gauge
	poolAcquiredConns prometheus.Gauge
}

// New creates a Manager and registers its collectors.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "yatstats",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(m.registry)

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	m.viewBuilds = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "view",
		Name:      "builds_total",
		Help:      "Composite view builds by outcome.",
	}, []string{"outcome"})
	m.viewBuildDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "view",
		Name:      "build_duration_seconds",
		Help:      "Time spent building one composite view.",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueries = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "queries_total",
		Help:      "Statements issued to the backing store by outcome.",
	}, []string{"outcome"})
	m.storeQueryDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "query_duration_seconds",
		Help:      "Statement latency against the backing store.",
		Buckets:   m.histogramBuckets,
	})

	m.poolTotalConns = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pool",
		Name:      "total_conns",
		Help:      "Connections currently held by the pool.",
	})
	m.poolIdleConns = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pool",
		Name:      "idle_conns",
		Help:      "Idle connections in the pool.",
	})
	m.poolAcquiredConns = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pool",
		Name:      "acquired_conns",
		Help:      "Connections currently checked out of the pool.",
	})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveViewBuild records one BuildView call.
func (m *Manager) ObserveViewBuild(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.viewBuilds.WithLabelValues(outcome).Inc()
	m.viewBuildDuration.Observe(elapsed.Seconds())
}

// QueryHook returns a database.QueryHook feeding the store metrics.
func (m *Manager) QueryHook() database.QueryHook {
	if m == nil {
		return nil
	}
	return func(_ context.Context, elapsed time.Duration, err error) {
		outcome := OutcomeOK
		if err != nil {
			outcome = "error"
		}
		m.storeQueries.WithLabelValues(outcome).Inc()
		m.storeQueryDuration.Observe(elapsed.Seconds())
	}
}

// SetPoolStats publishes a connection pool snapshot.
func (m *Manager) SetPoolStats(total, idle, acquired int32) {
	if m == nil {
		return
	}
	m.poolTotalConns.Set(float64(total))
	m.poolIdleConns.Set(float64(idle))
	m.poolAcquiredConns.Set(float64(acquired))
}
