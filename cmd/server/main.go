package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/transitdesk/lostfound-backend/internal/app"
	"github.com/transitdesk/lostfound-backend/internal/config"
	"github.com/transitdesk/lostfound-backend/internal/goroutine"
	httpHandlers "github.com/transitdesk/lostfound-backend/internal/http/handlers"
	httpRouter "github.com/transitdesk/lostfound-backend/internal/http/router"
	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if !cfg.IsProduction() {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("main: %v", err)
	}
	defer application.Close()

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		logger.Log.Fatalf("main: failed to prepare media storage: %v", err)
	}

	// HTTP хэндлеры.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Reports:       httpHandlers.NewReportHandler(application.ReportSvc),
		Claims:        httpHandlers.NewClaimHandler(application.ClaimSvc),
		Notifications: httpHandlers.NewNotificationHandler(application.NotificationSvc),
		Media:         httpHandlers.NewMediaHandler(photoStorage),
		Auth:          httpHandlers.NewAuthHandler(application.AuthSvc),
		Health:        httpHandlers.NewHealthHandler(application.DB, cfg.DBDriver),
	}, application.Tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	stopped := goroutine.SafeGoWithContext(ctx, logger.Log, "shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: failed to stop http server")
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).WithField("driver", cfg.DBDriver).Info("main: HTTP server started")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: server stopped with error: %v", err)
	}
	<-stopped
}
