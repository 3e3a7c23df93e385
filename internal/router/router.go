package router

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"notes-service/internal/handler"
	"notes-service/internal/middleware"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// New builds the echo instance with all middleware and routes wired.
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Order matters: recovery first, request id before logging.
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.Metrics)

	// Authentication routes - these don't belong under /api since they're
	// for getting access to the API. Logout takes an optional token, so it
	// stays outside the auth middleware.
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.Auth)

	api.GET("/me", handler.Me)

	api.GET("/notes", handler.ListNotes)
	api.POST("/notes", handler.CreateNote)
	api.GET("/notes/:id", handler.GetNote)
	api.PUT("/notes/:id", handler.UpdateNote)
	api.DELETE("/notes/:id", handler.DeleteNote)

	api.POST("/tenants/:slug/upgrade", handler.UpgradeTenant, middleware.RequireAdmin)

	return e
}
