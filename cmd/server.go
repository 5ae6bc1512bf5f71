package main

import (
	"yatstats/internal/config"
	"yatstats/internal/handlers"
	"yatstats/internal/metrics"
	"yatstats/internal/middleware"
	"yatstats/internal/tenancy"
	"yatstats/pkg/logger"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// newServer builds the echo instance. The tenant rewrite runs before routing,
// then the trailing slash it may leave on "/" is removed.
func newServer(cfg *config.Config, log *logger.Logger, m *metrics.Manager, routes handlers.Routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	resolver := tenancy.NewResolver(cfg.ReservedSubdomains, cfg.IsDevelopment())
	e.Pre(middleware.NewTenantMiddleware(resolver, nil).Rewrite())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics(m))
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Requests: cfg.RateLimitRequests,
		Window:   cfg.RateLimitWindow,
		Logger:   log,
	}))

	routes.Register(e)
	return e
}
