package handler

import (
	"github.com/labstack/echo/v4"

	"openrouter-proxy-go/internal/config"
	"openrouter-proxy-go/internal/metrics"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
// The metrics endpoint is only registered when enabled in config.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, models *ModelsHandler, health *HealthHandler, m *metrics.Metrics) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	e.GET("/api/v1/models", models.List)

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(m.Handler()))
	}
}
