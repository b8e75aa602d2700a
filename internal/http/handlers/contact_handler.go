package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akinfotech/rma-backend/internal/dto"
	"github.com/akinfotech/rma-backend/internal/http/handlers/common"
	"github.com/akinfotech/rma-backend/internal/service"
)

// ContactHandler обслуживает справочник контактов.
type ContactHandler struct {
	svc *service.ContactService
}

// NewContactHandler создаёт новый хэндлер.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Create POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	contact, err := h.svc.Create(c.Request.Context(), req.Name, req.Email, req.Phone, req.Company)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// Get GET /api/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	contact, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// List GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	contacts, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// Update PUT /api/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	contact, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Email, req.Phone, req.Company)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Delete DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "контакт удалён", nil)
}
