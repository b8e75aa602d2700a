package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akinfotech/rma-backend/internal/dto"
	"github.com/akinfotech/rma-backend/internal/http/handlers/common"
	"github.com/akinfotech/rma-backend/internal/logger"
	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
	"github.com/akinfotech/rma-backend/internal/service"
)

// RMAHandler обслуживает REST API заявок на возврат.
type RMAHandler struct {
	svc *service.RMAService
}

// NewRMAHandler создаёт новый хэндлер.
func NewRMAHandler(svc *service.RMAService) *RMAHandler {
	return &RMAHandler{svc: svc}
}

// Create POST /api/rmas
func (h *RMAHandler) Create(c *gin.Context) {
	var req dto.CreateRMARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	contactID, err := req.ParseContactID()
	if err != nil {
		common.RespondBadRequest(c, "invalid contact_id")
		return
	}

	rma, err := h.svc.Create(c.Request.Context(), service.CreateRMAInput{
		ContactID:        contactID,
		Brand:            req.Brand,
		ModelNumber:      req.ModelNumber,
		SerialNumber:     req.SerialNumber,
		ProblemsReported: req.ProblemsReported,
		Comments:         req.Comments,
		CustomFields:     req.CustomFields,
	})
	if err != nil {
		// Заявка сохранена, но письмо не ушло: отдаём сущность с предупреждением.
		if rma != nil && apperror.IsDependency(err) {
			c.JSON(http.StatusCreated, dto.NewRMAResponse(rma, err.Error()))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRMAResponse(rma, ""))
}

// Get GET /api/rmas/:id
func (h *RMAHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rma, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rma)
}

// List GET /api/rmas?status=...&q=...
// Параметр status выбирает вкладку дашборда, q включает поиск.
func (h *RMAHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	if query := c.Query("q"); query != "" {
		rmas, err := h.svc.Search(c.Request.Context(), query, limit, offset)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, listResponse(rmas, limit, offset))
		return
	}

	status := c.Query("status")
	if status == "" {
		common.RespondBadRequest(c, "параметр status или q обязателен")
		return
	}

	rmas, err := h.svc.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rmas, limit, offset))
}

// SendToServiceCentre POST /api/rmas/:id/send-to-service-centre
func (h *RMAHandler) SendToServiceCentre(c *gin.Context) {
	h.transition(c, func(id uuid.UUID) (*models.RMA, error) {
		return h.svc.SendToServiceCentre(c.Request.Context(), id)
	})
}

// SaveRemark POST /api/rmas/:id/remark
func (h *RMAHandler) SaveRemark(c *gin.Context) {
	var req dto.SaveRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	h.transition(c, func(id uuid.UUID) (*models.RMA, error) {
		return h.svc.SaveRemark(c.Request.Context(), id, req.Remark)
	})
}

// MarkReady POST /api/rmas/:id/mark-ready
func (h *RMAHandler) MarkReady(c *gin.Context) {
	var req dto.MarkReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	h.transition(c, func(id uuid.UUID) (*models.RMA, error) {
		return h.svc.MarkReady(c.Request.Context(), id, req.Remark)
	})
}

// ConfirmDelivery POST /api/rmas/:id/confirm-delivery
func (h *RMAHandler) ConfirmDelivery(c *gin.Context) {
	var req dto.ConfirmDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	h.transition(c, func(id uuid.UUID) (*models.RMA, error) {
		return h.svc.ConfirmDelivery(c.Request.Context(), id, req.OTP)
	})
}

// Delete DELETE /api/rmas/:id
// Удаление доступно только администратору, операторам запрещено.
func (h *RMAHandler) Delete(c *gin.Context) {
	role, err := common.CurrentRole(c)
	if err != nil || role != "admin" {
		common.RespondError(c, http.StatusForbidden, "операция доступна только администратору")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	if operatorID, err := common.CurrentOperatorID(c); err == nil {
		logger.WithComponent("rma").Infof("заявка %s удалена оператором %s", id, operatorID)
	}
	common.RespondSuccess(c, http.StatusOK, "заявка удалена", nil)
}

// transition выполняет общий сценарий перехода: parse id, вызов, ответ.
// Запись, прошедшая без письма, отдаётся с предупреждением, а не ошибкой.
func (h *RMAHandler) transition(c *gin.Context, fn func(id uuid.UUID) (*models.RMA, error)) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rma, err := fn(id)
	if err != nil {
		if rma != nil && apperror.IsDependency(err) {
			c.JSON(http.StatusOK, dto.NewRMAResponse(rma, err.Error()))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRMAResponse(rma, ""))
}

func listResponse(rmas []models.RMA, limit, offset int) dto.RMAListResponse {
	if rmas == nil {
		rmas = []models.RMA{}
	}
	return dto.RMAListResponse{
		Data: rmas,
		Pagination: dto.Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: len(rmas) == limit,
		},
	}
}
