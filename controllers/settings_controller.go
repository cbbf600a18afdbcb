package controllers

import (
	"net/http"

	"room-booking/services"
	"room-booking/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

// GetPublicSettings (GET /api/settings) returns only the numeric bounds.
func (ctrl *SettingsController) GetPublicSettings(c *gin.Context) {
	limits, err := ctrl.SettingsSvc.Limits(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, limits)
}

// GetSettings (GET /api/admin/settings)
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	settings, err := ctrl.SettingsSvc.Get(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings (PUT /api/admin/settings)
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	var payload services.SettingsUpdate
	if err := bindJSON(c, &payload); err != nil {
		utils.RespondError(c, err)
		return
	}

	settings, err := ctrl.SettingsSvc.Update(c.Request.Context(), payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
