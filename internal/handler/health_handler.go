package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notes-service/prometheus"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"service":   "notes-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Metrics exposes the Prometheus registry.
func Metrics(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}
