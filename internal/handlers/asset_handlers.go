package handlers

import (
	"net/http"

	"yatstats/internal/common"
	"yatstats/internal/services"
	"yatstats/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AssetHandlers serves school images.
type AssetHandlers struct {
	crests services.CrestService
	log    *logger.Logger
}

// NewAssetHandlers creates a new asset handlers instance
func NewAssetHandlers(crests services.CrestService, log *logger.Logger) *AssetHandlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &AssetHandlers{crests: crests, log: log}
}

// GetCrest handles GET /assets/crests/:hsid by redirecting to the stored
// image, or to the placeholder.
func (h *AssetHandlers) GetCrest(c echo.Context) error {
	key, err := common.ValidateTenantKey(c.Param("hsid"))
	if err != nil {
		return common.SendValidationError(c, "hsid", err.Error())
	}

	url, err := h.crests.CrestURL(c.Request().Context(), key)
	if err != nil {
		h.log.Warn("crest lookup failed", "hsid", key, "error", err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Redirect(http.StatusFound, url)
}
