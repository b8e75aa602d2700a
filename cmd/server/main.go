package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akinfotech/rma-backend/internal/config"
	"github.com/akinfotech/rma-backend/internal/db"
	"github.com/akinfotech/rma-backend/internal/goroutine"
	httpHandlers "github.com/akinfotech/rma-backend/internal/http/handlers"
	httpRouter "github.com/akinfotech/rma-backend/internal/http/router"
	"github.com/akinfotech/rma-backend/internal/logger"
	"github.com/akinfotech/rma-backend/internal/mail"
	"github.com/akinfotech/rma-backend/internal/repository"
	"github.com/akinfotech/rma-backend/internal/service"
	"github.com/akinfotech/rma-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Токены выпускает внешний identity provider, мы только проверяем подпись.
	tokens := service.NewTokenVerifier(cfg.JWTSecret)

	// Репозитории.
	rmaRepo := repository.NewRMARepository(dbConn)
	contactRepo := repository.NewContactRepository(dbConn)
	brandRepo := repository.NewBrandRepository(dbConn)
	fieldRepo := repository.NewCustomFieldRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)

	// Сервисы.
	cache := service.NewCacheService()
	mailClient := mail.NewClient(cfg.BrevoBaseURL, cfg.BrevoAPIKey, cfg.SenderEmail, cfg.SenderName)
	fieldService := service.NewCustomFieldService(fieldRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	contactService := service.NewContactService(contactRepo)
	brandService := service.NewBrandService(brandRepo)
	rmaService := service.NewRMAService(rmaRepo, contactRepo, fieldService, mailClient, settingsService, cache)
	dashboardService := service.NewDashboardService(rmaRepo, cache, cfg.StatsCacheTTL)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)
	rmaService.SetHub(hub)

	// HTTP хэндлеры.
	rmaHandler := httpHandlers.NewRMAHandler(rmaService)
	contactHandler := httpHandlers.NewContactHandler(contactService)
	brandHandler := httpHandlers.NewBrandHandler(brandService)
	fieldHandler := httpHandlers.NewCustomFieldHandler(fieldService)
	settingsHandler := httpHandlers.NewSettingsHandler(settingsService)
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokens)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, rmaHandler, contactHandler, brandHandler, fieldHandler, settingsHandler, dashboardHandler, wsHandler, healthHandler, tokens)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
