package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"yatstats/internal/config"
	"yatstats/internal/handlers"
	"yatstats/internal/metrics"
	"yatstats/internal/models"
	"yatstats/internal/services"
	"yatstats/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViews struct {
	views map[string]*models.CompositeView
	calls []string
}

func (f *fakeViews) BuildView(_ context.Context, key string) (*models.CompositeView, error) {
	f.calls = append(f.calls, key)
	if v, ok := f.views[key]; ok {
		return v, nil
	}
	return nil, services.ErrTenantNotFound
}

func (f *fakeViews) Invalidate(context.Context, string) error { return nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T, cfg *config.Config) (*echo.Echo, *fakeViews) {
	t.Helper()
	views := &fakeViews{views: map[string]*models.CompositeView{
		"5004": {
			School: &models.School{TenantKey: "5004", DisplayName: "North High"},
			Roster: []models.Player{{ID: 1, LastName: "Adams"}},
			Stats:  models.StatsIndex{1: models.EmptyPlayerStats()},
		},
	}}
	log := logger.NewNop()
	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))

	e := newServer(cfg, log, m, handlers.Routes{
		Microsite: handlers.NewMicrositeHandlers(views, cfg.PrimarySiteURL, log),
		API:       handlers.NewAPIHandlers(views, log),
		Assets:    handlers.NewAssetHandlers(services.NewCrestService(nil, services.CrestConfig{Placeholder: cfg.CrestPlaceholder}), log),
		Health:    handlers.NewHealthHandlers(okPinger{}, nil, version),
		Metrics:   m.Handler(),
	})
	return e, views
}

func request(e *echo.Echo, host, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServerTenantHostRoutesToSchoolPage(t *testing.T) {
	e, views := newTestServer(t, config.New())

	rec := request(e, "5004.yatstats.com", "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "North High")
	assert.Equal(t, []string{"5004"}, views.calls)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerTenantHostPlayersPage(t *testing.T) {
	e, _ := newTestServer(t, config.New())

	rec := request(e, "5004.yatstats.com:443", "/players")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"players"`)
}

func TestServerUnknownTenantRedirects(t *testing.T) {
	e, _ := newTestServer(t, config.New())

	rec := request(e, "9999.yatstats.com", "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://yatstats.com", rec.Header().Get(echo.HeaderLocation))
}

func TestServerPrimaryHostsServeLanding(t *testing.T) {
	e, views := newTestServer(t, config.New())

	for _, host := range []string{"www.yatstats.com", "yatstats.com", "localhost:8080"} {
		rec := request(e, host, "/")
		assert.Equal(t, http.StatusOK, rec.Code, host)
		assert.Contains(t, rec.Body.String(), `"site"`, host)
	}
	assert.Empty(t, views.calls)
}

func TestServerAPIIsNotRewritten(t *testing.T) {
	e, views := newTestServer(t, config.New())

	rec := request(e, "5004.yatstats.com", "/api/schools/5004")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
	assert.Equal(t, []string{"5004"}, views.calls)
}

func TestServerInfrastructurePathsOnTenantHost(t *testing.T) {
	e, _ := newTestServer(t, config.New())

	assert.Equal(t, http.StatusOK, request(e, "5004.yatstats.com", "/health").Code)

	rec := request(e, "5004.yatstats.com", "/assets/crests/5004")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/assets/img/placeholder.png", rec.Header().Get(echo.HeaderLocation))

	rec = request(e, "5004.yatstats.com", "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "yatstats_http_requests_total")
}

func TestServerDevelopmentDisablesRewrite(t *testing.T) {
	cfg := config.New()
	cfg.Env = "development"
	e, views := newTestServer(t, cfg)

	rec := request(e, "5004.yatstats.com", "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"site"`)
	assert.Empty(t, views.calls)

	rec = request(e, "localhost:8080", "/5004")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"5004"}, views.calls)
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "tenant host", args: []string{"resolve", "5004.example.com", "/students"}, want: "host 5004.example.com: hsid 5004\npath /5004/students\n"},
		{name: "reserved alias", args: []string{"resolve", "www.example.com", "/students"}, want: "host www.example.com: no tenant\npath /students\n"},
		{name: "default path", args: []string{"resolve", "5004.example.com"}, want: "host 5004.example.com: hsid 5004\npath /5004/\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			defer rootCmd.SetArgs(nil)

			require.NoError(t, rootCmd.Execute())
			assert.Equal(t, tt.want, out.String())
		})
	}
}
