package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akinfotech/rma-backend/internal/dto"
	"github.com/akinfotech/rma-backend/internal/http/handlers/common"
	"github.com/akinfotech/rma-backend/internal/service"
)

// BrandHandler обслуживает справочник брендов.
type BrandHandler struct {
	svc *service.BrandService
}

// NewBrandHandler создаёт новый хэндлер.
func NewBrandHandler(svc *service.BrandService) *BrandHandler {
	return &BrandHandler{svc: svc}
}

// Create POST /api/brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req dto.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	brand, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

// List GET /api/brands
func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

// Delete DELETE /api/brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "бренд удалён", nil)
}
