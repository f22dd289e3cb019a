package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/service"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// SettingsHandler serves the station policy endpoints.
type SettingsHandler struct {
	settingsSvc *service.SettingsService
}

func NewSettingsHandler(settingsSvc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get handles GET /api/v1/stations/:id/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, 17000, err)
		return
	}

	response.OK(c, toSettingsResponse(settings))
}

// Update handles PUT /api/v1/stations/:id/settings (admin).
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateStationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "invalid request parameters")
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, 17000, err)
		return
	}

	response.OK(c, toSettingsResponse(settings))
}
