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

// MicrositeHandlers serves the per-school pages reached through the tenant
// path rewrite.
type MicrositeHandlers struct {
	views          services.ViewService
	primarySiteURL string
	log            *logger.Logger
}

// NewMicrositeHandlers creates a new microsite handlers instance
func NewMicrositeHandlers(views services.ViewService, primarySiteURL string, log *logger.Logger) *MicrositeHandlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &MicrositeHandlers{
		views:          views,
		primarySiteURL: primarySiteURL,
		log:            log,
	}
}

// SchoolPage is the page model for a school's home page.
type SchoolPage struct {
	School   *models.School       `json:"school"`
	CrestURL string               `json:"crest_url"`
	Roster   []models.RosterEntry `json:"roster"`
}

// RosterPage is the page model for the players page.
type RosterPage struct {
	School  *models.School       `json:"school"`
	Players []models.RosterEntry `json:"players"`
}

// Landing handles requests that carry no tenant (apex or www host).
func (h *MicrositeHandlers) Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name": "yatstats",
		"site": h.primarySiteURL,
	})
}

// GetSchoolPage handles GET /:hsid
func (h *MicrositeHandlers) GetSchoolPage(c echo.Context) error {
	view, ok, err := h.buildView(c)
	if !ok {
		return err
	}

	return c.JSON(http.StatusOK, SchoolPage{
		School:   view.School,
		CrestURL: CrestPath(view.School.TenantKey),
		Roster:   view.Entries(),
	})
}

// GetRosterPage handles GET /:hsid/players
func (h *MicrositeHandlers) GetRosterPage(c echo.Context) error {
	view, ok, err := h.buildView(c)
	if !ok {
		return err
	}

	return c.JSON(http.StatusOK, RosterPage{
		School:  view.School,
		Players: view.Entries(),
	})
}

// buildView loads the view for the :hsid param. When ok is false the
// response has been decided and err must be returned as is.
func (h *MicrositeHandlers) buildView(c echo.Context) (*models.CompositeView, bool, error) {
	key, err := common.ValidateTenantKey(c.Param("hsid"))
	if err != nil {
		return nil, false, c.Redirect(http.StatusFound, h.primarySiteURL)
	}

	view, err := h.views.BuildView(c.Request().Context(), key)
	switch {
	case err == nil:
		return view, true, nil
	case errors.Is(err, services.ErrTenantNotFound):
		return nil, false, c.Redirect(http.StatusFound, h.primarySiteURL)
	default:
		h.log.Error("microsite view failed", "hsid", key, "request_id", requestID(c), "error", err)
		return nil, false, common.SendServerError(c, "Something went wrong loading this page")
	}
}

// CrestPath is the local path serving tenantKey's crest.
func CrestPath(tenantKey string) string {
	return "/assets/crests/" + tenantKey
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
