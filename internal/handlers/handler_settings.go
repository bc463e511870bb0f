package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/crateworks/debt_ledger_app/internal/middleware"
)

// settingsHandler handles HTTP requests related to settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers all settings-related routes.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", h.setSetting)
	}
}

// getSetting godoc
// @Summary Get a setting by key
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} dto.SettingResponse
// @Failure 404 {object} map[string]string "Setting not found"
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *settingsHandler) getSetting(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve setting")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingResponse(setting))
}

// setSetting godoc
// @Summary Create or replace a setting value
// @Description Typed keys such as global_unit_price are validated before storing
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param setting body dto.UpdateSettingRequest true "Setting value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} map[string]string "Invalid value for key"
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *settingsHandler) setSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for set setting request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	setting, err := h.settingsService.SetSetting(c.Request.Context(), c.Param("key"), req.Value, updaterUserID)
	if err != nil {
		respondWithError(c, err, "Failed to store setting")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingResponse(setting))
}
