package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transitdesk/lostfound-backend/internal/config"
	"github.com/transitdesk/lostfound-backend/internal/http/handlers"
	"github.com/transitdesk/lostfound-backend/internal/http/middleware"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

// Handlers набор хэндлеров, которые подключает роутер.
type Handlers struct {
	Reports       *handlers.ReportHandler
	Claims        *handlers.ClaimHandler
	Notifications *handlers.NotificationHandler
	Media         *handlers.MediaHandler
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS(handlers.MediaPrefix, http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)
	api.Use(middleware.Identity(tokenManager))

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(middleware.RateLimitRule{Scope: "auth", Limit: 5, Period: cfg.RateLimitPeriod}))
	{
		authGroup.POST("/staff", h.Auth.StaffLogin)
	}

	submitLimit := middleware.RateLimit(middleware.RateLimitRule{
		Scope:  "submit",
		Limit:  cfg.RateLimitLimit,
		Period: cfg.RateLimitPeriod,
	})

	api.POST("/lost", submitLimit, h.Reports.CreateLost)
	api.GET("/lost", h.Reports.ListLost)
	api.GET("/lost/:ref", h.Reports.GetLost)

	api.POST("/found", submitLimit, h.Reports.CreateFound)
	api.GET("/found", h.Reports.ListFound)
	api.GET("/found/:ref", h.Reports.GetFound)

	api.POST("/media/images", submitLimit, h.Media.UploadImage)

	claims := api.Group("/claims")
	{
		claims.GET("", h.Claims.ListClaims)
		claims.GET("/:id", middleware.UUIDValidator("id"), h.Claims.GetClaim)
		claims.POST("/request/:id", middleware.UUIDValidator("id"), h.Claims.RequestClaim)

		resolve := []gin.HandlerFunc{middleware.UUIDValidator("id")}
		if cfg.EnforceStaffRole {
			resolve = append(resolve, middleware.RequireStaff())
		}
		resolve = append(resolve, h.Claims.ResolveClaim)
		claims.PUT("/:id", resolve...)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notifications.ListNotifications)
		notifications.GET("/unread/count", h.Notifications.CountUnread)
		notifications.PUT("/read-all", h.Notifications.MarkAllAsRead)
		notifications.PUT("/:id/read", middleware.UUIDValidator("id"), h.Notifications.MarkAsRead)
	}

	return r
}
