package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"openrouter-proxy-go/internal/config"
	"openrouter-proxy-go/internal/service"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	cfg     *config.Config
	models  *service.ModelsService
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, models *service.ModelsService, v Version) *HealthHandler {
	return &HealthHandler{cfg: cfg, models: models, version: v}
}

// Healthz reports liveness. It never contacts OpenRouter.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ModelsURL      string `json:"models_url"`
	TimeoutSeconds int    `json:"upstream_timeout_seconds"`
	MaxBodyBytes   int64  `json:"upstream_max_body_bytes"`
	Metrics        bool   `json:"metrics_enabled"`
}

// Status describes where model listings are fetched from and under which limits.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		Status:         "ok",
		Version:        string(h.version),
		ModelsURL:      h.models.ModelsURL(),
		TimeoutSeconds: h.cfg.Upstream.TimeoutSeconds,
		MaxBodyBytes:   h.cfg.Upstream.MaxBodyBytes,
		Metrics:        h.cfg.Metrics.Enabled,
	})
}
