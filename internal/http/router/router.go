package router

import (
	"github.com/gin-gonic/gin"

	"github.com/akinfotech/rma-backend/internal/config"
	"github.com/akinfotech/rma-backend/internal/http/handlers"
	"github.com/akinfotech/rma-backend/internal/http/middleware"
	"github.com/akinfotech/rma-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	rmaHandler *handlers.RMAHandler,
	contactHandler *handlers.ContactHandler,
	brandHandler *handlers.BrandHandler,
	customFieldHandler *handlers.CustomFieldHandler,
	settingsHandler *handlers.SettingsHandler,
	dashboardHandler *handlers.DashboardHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokens *service.TokenVerifier,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")

	// Публичная анкета приёма: заявку может подать клиент без авторизации,
	// поэтому маршрут прикрыт rate limit.
	intakeRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/rmas", intakeRateLimit, rmaHandler.Create)

	// Схема анкеты и справочник брендов нужны форме до авторизации.
	api.GET("/custom-fields", customFieldHandler.List)
	api.GET("/brands", brandHandler.List)

	// Канал событий дашборда: токен проверяется внутри, см. WSHandler.
	api.GET("/ws", wsHandler.Connect)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		rmas := protected.Group("/rmas")
		{
			rmas.GET("", rmaHandler.List)
			rmas.GET("/:id", middleware.UUIDValidator("id"), rmaHandler.Get)
			rmas.POST("/:id/send-to-service-centre", middleware.UUIDValidator("id"), rmaHandler.SendToServiceCentre)
			rmas.POST("/:id/remark", middleware.UUIDValidator("id"), rmaHandler.SaveRemark)
			rmas.POST("/:id/mark-ready", middleware.UUIDValidator("id"), rmaHandler.MarkReady)
			rmas.POST("/:id/confirm-delivery", middleware.UUIDValidator("id"), rmaHandler.ConfirmDelivery)
			rmas.DELETE("/:id", middleware.UUIDValidator("id"), rmaHandler.Delete)
		}

		contacts := protected.Group("/contacts")
		{
			contacts.POST("", contactHandler.Create)
			contacts.GET("", contactHandler.List)
			contacts.GET("/:id", middleware.UUIDValidator("id"), contactHandler.Get)
			contacts.PUT("/:id", middleware.UUIDValidator("id"), contactHandler.Update)
			contacts.DELETE("/:id", middleware.UUIDValidator("id"), contactHandler.Delete)
		}

		brands := protected.Group("/brands")
		{
			brands.POST("", brandHandler.Create)
			brands.DELETE("/:id", middleware.UUIDValidator("id"), brandHandler.Delete)
		}

		fields := protected.Group("/custom-fields")
		{
			fields.POST("", customFieldHandler.Create)
			fields.PUT("/:id", middleware.UUIDValidator("id"), customFieldHandler.Update)
			fields.DELETE("/:id", middleware.UUIDValidator("id"), customFieldHandler.Delete)
		}

		protected.GET("/settings", settingsHandler.Get)
		protected.PUT("/settings", settingsHandler.Update)

		protected.GET("/dashboard/stats", dashboardHandler.GetStats)
	}

	return r
}
