package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/akinfotech/rma-backend/internal/http/handlers/common"
	"github.com/akinfotech/rma-backend/internal/logger"
	"github.com/akinfotech/rma-backend/internal/service"
	"github.com/akinfotech/rma-backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler подключает операторов к каналу событий дашборда.
type WSHandler struct {
	hub      *ws.Hub
	verifier *service.TokenVerifier
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, verifier *service.TokenVerifier) *WSHandler {
	return &WSHandler{hub: hub, verifier: verifier}
}

// Connect GET /api/ws?token=...
// Токен передаётся query-параметром, браузерный WebSocket API не умеет
// выставлять заголовок Authorization.
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		common.RespondUnauthorized(c, "токен обязателен")
		return
	}

	operatorID, _, err := h.verifier.Parse(token)
	if err != nil {
		common.RespondUnauthorized(c, "невалидный токен")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithComponent("ws").Errorf("не удалось обновить соединение: %v", err)
		return
	}

	client := ws.NewClient(conn, h.hub, operatorID)
	h.hub.Register(client)
	client.Run(c.Request.Context())
}
