package handlers

import (
	"errors"
	"net/http"

	"yatstats/internal/common"
	"yatstats/internal/models"
	"yatstats/internal/services"
	"yatstats/pkg/logger"

	"github.com/labstack/echo/v4"
)

// APIHandlers serves tenant data as JSON under /api.
type APIHandlers struct {
	views services.ViewService
	log   *logger.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(views services.ViewService, log *logger.Logger) *APIHandlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &APIHandlers{views: views, log: log}
}

// GetSchool handles GET /api/schools/:hsid
func (h *APIHandlers) GetSchool(c echo.Context) error {
	return h.respond(c, func(v *models.CompositeView) interface{} {
		return v.School
	})
}

// GetPlayers handles GET /api/players/:hsid
func (h *APIHandlers) GetPlayers(c echo.Context) error {
	return h.respond(c, func(v *models.CompositeView) interface{} {
		return map[string]interface{}{
			"hsid":    v.School.TenantKey,
			"players": v.Entries(),
		}
	})
}

// GetBatting handles GET /api/batting/:hsid
func (h *APIHandlers) GetBatting(c echo.Context) error {
	return h.respond(c, func(v *models.CompositeView) interface{} {
		return map[string]interface{}{
			"hsid":    v.School.TenantKey,
			"batting": v.BattingLines(),
		}
	})
}

// GetPitching handles GET /api/pitching/:hsid
func (h *APIHandlers) GetPitching(c echo.Context) error {
	return h.respond(c, func(v *models.CompositeView) interface{} {
		return map[string]interface{}{
			"hsid":     v.School.TenantKey,
			"pitching": v.PitchingLines(),
		}
	})
}

func (h *APIHandlers) respond(c echo.Context, body func(*models.CompositeView) interface{}) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	key, err := common.ValidateTenantKey(c.Param("hsid"))
	if err != nil {
		return common.SendValidationError(c, "hsid", err.Error())
	}

	view, err := h.views.BuildView(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return common.SendNotFoundError(c, "School")
		}
		h.log.Error("api view failed", "hsid", key, "path", c.Path(), "request_id", requestID(c), "error", err)
		return common.SendServerError(c, "Failed to load school data")
	}

	return c.JSON(http.StatusOK, body(view))
}
