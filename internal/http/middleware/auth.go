package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akinfotech/rma-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextOperatorIDKey = "operatorID"
	ContextRoleKey       = "role"
)

// AuthMiddleware проверяет bearer токен, выпущенный внешним identity provider.
func AuthMiddleware(tokens *service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		operatorID, role, err := tokens.Parse(raw)
		if err != nil || operatorID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.Set(ContextOperatorIDKey, operatorID)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}
