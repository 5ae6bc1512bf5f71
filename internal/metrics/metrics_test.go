package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
}

func TestObserveViewBuild(t *testing.T) {
	m := newTestManager()

	m.ObserveViewBuild(OutcomeOK, 10*time.Millisecond)
	m.ObserveViewBuild(OutcomeOK, 20*time.Millisecond)
	m.ObserveViewBuild(OutcomeNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.viewBuilds.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.viewBuilds.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.viewBuilds.WithLabelValues(OutcomeFailed)))
}

func TestQueryHook(t *testing.T) {
	m := newTestManager()
	hook := m.QueryHook()
	require.NotNil(t, hook)

	hook(context.Background(), time.Millisecond, nil)
	hook(context.Background(), time.Millisecond, nil)
	hook(context.Background(), time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeQueries.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeQueries.WithLabelValues("error")))
}

func TestObserveHTTP(t *testing.T) {
	m := newTestManager()

	m.ObserveHTTP(http.MethodGet, "/:hsid", http.StatusOK, time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/:hsid", http.StatusFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/:hsid", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/:hsid", "302")))
}

func TestSetPoolStats(t *testing.T) {
	m := newTestManager()

	m.SetPoolStats(10, 7, 3)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.poolTotalConns))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.poolIdleConns))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.poolAcquiredConns))
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager

	assert.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveViewBuild(OutcomeOK, time.Millisecond)
		m.SetPoolStats(1, 1, 0)
	})
	assert.Nil(t, m.QueryHook())
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := newTestManager()
	m.ObserveViewBuild(OutcomeCacheHit, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_view_builds_total{outcome="cache_hit"} 1`)
}
