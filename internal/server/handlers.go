package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xaenox/spam-detector/internal/service"
)

// Handlers binds the prediction service to the HTTP routes.
type Handlers struct {
	svc *service.Service
}

func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

func (h *Handlers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Name:    "Spam Detector API",
		Version: Version,
		Status:  "running",
		Health:  "/health",
	})
}

// Health always answers 200. A failed or pending model load shows up
// only as model_loaded=false; infrastructure probes treating this
// endpoint as readiness will not see startup failures. Kept that way
// deliberately to match the serving contract.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Health(c.Request().Context()))
}

func (h *Handlers) Predict(c echo.Context) error {
	var req PredictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.PredictOne(c.Request().Context(), req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handlers) PredictBatch(c echo.Context) error {
	var req PredictBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	batch, err := h.svc.PredictBatch(c.Request().Context(), req.Messages)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, batch)
}

func (h *Handlers) Metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Metrics(c.Request().Context()))
}

func (h *Handlers) Reload(c echo.Context) error {
	name, err := h.svc.Reload(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ReloadResponse{Status: "reloaded", ModelName: name})
}

// httpError maps domain errors onto status codes: validation failures
// are the client's fault, everything else is a server error.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
