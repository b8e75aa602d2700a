package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akinfotech/rma-backend/internal/dto"
	"github.com/akinfotech/rma-backend/internal/http/handlers/common"
	"github.com/akinfotech/rma-backend/internal/service"
)

// CustomFieldHandler обслуживает схему анкеты приёма.
type CustomFieldHandler struct {
	svc *service.CustomFieldService
}

// NewCustomFieldHandler создаёт новый хэндлер.
func NewCustomFieldHandler(svc *service.CustomFieldService) *CustomFieldHandler {
	return &CustomFieldHandler{svc: svc}
}

func fieldInput(req dto.CustomFieldRequest) service.CustomFieldInput {
	return service.CustomFieldInput{
		Name:         req.Name,
		Label:        req.Label,
		Type:         req.Type,
		Required:     req.Required,
		DefaultValue: req.DefaultValue,
		Options:      req.Options,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	}
}

// Create POST /api/custom-fields
func (h *CustomFieldHandler) Create(c *gin.Context) {
	var req dto.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	def, err := h.svc.Create(c.Request.Context(), fieldInput(req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, def)
}

// List GET /api/custom-fields
func (h *CustomFieldHandler) List(c *gin.Context) {
	defs, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

// Update PUT /api/custom-fields/:id
func (h *CustomFieldHandler) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	def, err := h.svc.Update(c.Request.Context(), id, fieldInput(req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, def)
}

// Delete DELETE /api/custom-fields/:id
func (h *CustomFieldHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "поле удалено", nil)
}
