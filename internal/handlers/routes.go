package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Routes groups every handler set mounted on the server.
type Routes struct {
	Microsite *MicrositeHandlers
	API       *APIHandlers
	Assets    *AssetHandlers
	Health    *HealthHandlers
	Metrics   http.Handler
}

// Register mounts the routes on e. Tenant pages are registered last so the
// static infrastructure prefixes win.
func (r Routes) Register(e *echo.Echo) {
	if r.Health != nil {
		e.GET("/health", r.Health.LivenessCheck)
		e.GET("/health/ready", r.Health.ReadinessCheck)
	}
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")
	api.GET("/schools/:hsid", r.API.GetSchool)
	api.GET("/players/:hsid", r.API.GetPlayers)
	api.GET("/batting/:hsid", r.API.GetBatting)
	api.GET("/pitching/:hsid", r.API.GetPitching)

	e.GET("/assets/crests/:hsid", r.Assets.GetCrest)

	e.GET("/", r.Microsite.Landing)
	e.GET("/:hsid", r.Microsite.GetSchoolPage)
	e.GET("/:hsid/players", r.Microsite.GetRosterPage)
}
