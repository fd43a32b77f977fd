package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/transitdesk/lostfound-backend/internal/config"
	"github.com/transitdesk/lostfound-backend/internal/db"
	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/repository"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

// App собирает репозитории и сервисы поверх одного подключения к базе.
// Используется и HTTP сервером, и lfctl.
type App struct {
	Config *config.Config
	DB     *sqlx.DB

	LostItems     *repository.LostItemRepository
	FoundItems    *repository.FoundItemRepository
	Claims        *repository.ClaimRepository
	Notifications *repository.NotificationRepository

	Tokens          *service.TokenManager
	NotificationSvc *service.NotificationService
	Engine          *service.ClaimEngine
	ClaimSvc        *service.ClaimService
	ReportSvc       *service.ReportService
	AuthSvc         *service.AuthService
}

// New подключается к базе, применяет миграции и связывает сервисы.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("app: connect %s: %w", cfg.DBDriver, err)
	}

	if err := db.RunMigrations(ctx, conn, db.MigrationsDir(cfg.MigrationsPath, cfg.DBDriver)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("app: migrations: %w", err)
	}

	return Wire(cfg, conn), nil
}

// Wire связывает сервисы поверх готового подключения.
func Wire(cfg *config.Config, conn *sqlx.DB) *App {
	a := &App{
		Config:        cfg,
		DB:            conn,
		LostItems:     repository.NewLostItemRepository(conn),
		FoundItems:    repository.NewFoundItemRepository(conn),
		Claims:        repository.NewClaimRepository(conn),
		Notifications: repository.NewNotificationRepository(conn),
		Tokens:        service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL),
	}

	a.NotificationSvc = service.NewNotificationService(a.Notifications)
	a.Engine = service.NewClaimEngine(a.LostItems, a.FoundItems, a.Claims, a.NotificationSvc)
	a.ClaimSvc = service.NewClaimService(a.Claims, a.LostItems, a.FoundItems, a.NotificationSvc)
	a.ReportSvc = service.NewReportService(a.LostItems, a.FoundItems, a.Engine)
	a.AuthSvc = service.NewAuthService(a.Tokens, cfg.StaffPasscode)
	return a
}

// Close закрывает подключение к базе.
func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		logger.Log.WithError(err).Error("app: failed to close database")
	}
}
