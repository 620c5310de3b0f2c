package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/utils"
)

// SettingsHandler handles the platform and per-salon configuration documents.
// Config documents replace wholesale on save.
type SettingsHandler struct {
	settings *repository.SettingsRepository
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settings *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetPlatformConfig handles GET /v1/settings/platform (super-admin).
func (h *SettingsHandler) GetPlatformConfig(c *gin.Context) {
	cfg, err := h.settings.GetPlatformConfig(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if cfg == nil {
		utils.Error(c, 404, "NOT_FOUND", "Platform configuration not seeded yet")
		return
	}
	utils.Success(c, 200, "Platform configuration retrieved", cfg)
}

// PutPlatformConfig handles PUT /v1/settings/platform (super-admin).
func (h *SettingsHandler) PutPlatformConfig(c *gin.Context) {
	var cfg models.AppConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.settings.PutPlatformConfig(c.Request.Context(), &cfg); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Platform configuration saved", nil)
}

// GetAppConfig handles GET /v1/settings/app
func (h *SettingsHandler) GetAppConfig(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	cfg, err := h.settings.GetAppConfig(c.Request.Context(), salonID)
	if err != nil {
		handleError(c, err)
		return
	}
	if cfg == nil {
		// Fall back to the platform default so a fresh salon still renders.
		cfg, err = h.settings.GetPlatformConfig(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
	}
	if cfg == nil {
		utils.Error(c, 404, "NOT_FOUND", "App configuration not found")
		return
	}
	utils.Success(c, 200, "App configuration retrieved", cfg)
}

// PutAppConfig handles PUT /v1/settings/app
func (h *SettingsHandler) PutAppConfig(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var cfg models.AppConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.settings.PutAppConfig(c.Request.Context(), salonID, &cfg); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "App configuration saved", nil)
}

// GetProfile handles GET /v1/settings/profile
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	profile, err := h.settings.GetProfile(c.Request.Context(), salonID)
	if err != nil {
		handleError(c, err)
		return
	}
	if profile == nil {
		utils.Error(c, 404, "NOT_FOUND", "Salon profile not found")
		return
	}
	utils.Success(c, 200, "Salon profile retrieved", profile)
}

// PutProfile handles PUT /v1/settings/profile
func (h *SettingsHandler) PutProfile(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var profile models.SalonProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.settings.PutProfile(c.Request.Context(), salonID, &profile); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Salon profile saved", nil)
}
