package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRMAHandler_Create_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RMAHandler{svc: nil}
	r.POST("/rmas", handler.Create)

	req, _ := http.NewRequest("POST", "/rmas", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRMAHandler_Create_InvalidContactID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RMAHandler{svc: nil}
	r.POST("/rmas", handler.Create)

	body := `{
		"contact_id": "not-a-uuid",
		"brand": "Lenovo",
		"model_number": "ThinkPad T14",
		"serial_number": "SN-4412-0093",
		"problems_reported": "Не включается"
	}`
	req, _ := http.NewRequest("POST", "/rmas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "contact_id")
}

func TestRMAHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RMAHandler{svc: nil}
	r.GET("/rmas/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/rmas/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRMAHandler_List_RequiresStatusOrQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RMAHandler{svc: nil}
	r.GET("/rmas", handler.List)

	req, _ := http.NewRequest("GET", "/rmas", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")
}

func TestRMAHandler_SaveRemark_MissingRemark(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RMAHandler{svc: nil}
	r.POST("/rmas/:id/remark", handler.SaveRemark)

	req, _ := http.NewRequest("POST", "/rmas/invalid-uuid/remark", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRMAHandler_Delete_ForbiddenForOperator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "operator")
		c.Next()
	})
	handler := &RMAHandler{svc: nil}
	r.DELETE("/rmas/:id", handler.Delete)

	req, _ := http.NewRequest("DELETE", "/rmas/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRMAHandler_ConfirmDelivery_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RMAHandler{svc: nil}
	r.POST("/rmas/:id/confirm-delivery", handler.ConfirmDelivery)

	req, _ := http.NewRequest("POST", "/rmas/invalid-uuid/confirm-delivery", strings.NewReader(`{"otp":"123456"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
