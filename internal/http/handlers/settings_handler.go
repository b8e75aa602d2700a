package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akinfotech/rma-backend/internal/dto"
	"github.com/akinfotech/rma-backend/internal/http/handlers/common"
	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/service"
)

// SettingsHandler обслуживает общие настройки сервиса.
type SettingsHandler struct {
	svc *service.SettingsService
}

// NewSettingsHandler создаёт новый хэндлер.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.svc.Get(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update PUT /api/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	settings, err := h.svc.Update(c.Request.Context(), &models.Settings{
		RequireOTP:         req.RequireOTP,
		EmailNotifications: req.EmailNotifications,
		SMSNotifications:   req.SMSNotifications,
		AutoAssign:         req.AutoAssign,
		DarkMode:           req.DarkMode,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
