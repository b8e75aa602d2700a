package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akinfotech/rma-backend/internal/service"
)

// DashboardHandler отдаёт агрегированные показатели дашборда.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler создаёт новый хэндлер.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetStats GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
