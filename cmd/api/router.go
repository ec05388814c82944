package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "novalib-backend/internal/domains/auth/handler"
	cataloghandler "novalib-backend/internal/domains/catalog/handler"
	notifhandler "novalib-backend/internal/domains/notification/handler"
	deskhandler "novalib-backend/internal/domains/returndesk/handler"
	userhandler "novalib-backend/internal/domains/user/handler"
	"novalib-backend/internal/shared/middleware"
	"novalib-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.ClientIPMiddleware())

	// Legacy endpoints, mounted at their historical paths with their
	// original response shapes.
	authhandler.NewAuthHandler(c.AuthService).RegisterRoutes(r)
	notifHandler := notifhandler.NewNotificationHandler(c.NotificationService)
	notifHandler.RegisterLegacyRoutes(r)
	cataloghandler.NewLegacyHandler(c.CatalogService).RegisterRoutes(r)

	r.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/health", func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	})

	// Staff API. Everything under /api/v1 requires a session token
	// from the OTP verification flow.
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(c.JWT))
	{
		userhandler.NewUserHandler(c.UserService).RegisterRoutes(v1)
		cataloghandler.NewCatalogHandler(c.CatalogService).RegisterRoutes(v1)
		deskhandler.NewReturnDeskHandler(c.ReturnDeskService).RegisterRoutes(v1)
		notifHandler.RegisterRoutes(v1)
	}

	return r
}
