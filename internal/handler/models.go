package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"openrouter-proxy-go/internal/model"
	"openrouter-proxy-go/internal/service"
)

// ModelsHandler serves the model listing by relaying it from OpenRouter.
type ModelsHandler struct {
	service *service.ModelsService
	logger  *slog.Logger
}

// NewModelsHandler creates a ModelsHandler.
func NewModelsHandler(svc *service.ModelsService, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		service: svc,
		logger:  logger.With("component", "models_handler"),
	}
}

// List forwards the query to the upstream listing and writes exactly one
// response: the decoded body under the upstream's own status, or a 500
// error envelope when the upstream could not be reached or understood.
func (h *ModelsHandler) List(c echo.Context) error {
	params, err := model.ParseListModelsParams(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	res, err := h.service.ListModels(c.Request().Context(), params)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(res.StatusCode, res.Body)
}

// mapError answers every upstream failure with a 500 envelope. The upstream
// status, if any, is only logged.
func (h *ModelsHandler) mapError(c echo.Context, err error) error {
	attrs := []any{
		"err", err,
		"path", c.Request().URL.Path,
	}

	var (
		trErr  *service.TransportError
		decErr *service.DecodeError
	)
	switch {
	case errors.As(err, &trErr):
		attrs = append(attrs, "kind", "transport")
	case errors.As(err, &decErr):
		attrs = append(attrs, "kind", "decode", "upstream_status", decErr.StatusCode)
	}
	h.logger.Error("upstream failure", attrs...)

	return c.JSON(http.StatusInternalServerError,
		model.NewErrorEnvelope(http.StatusInternalServerError, err.Error()))
}
