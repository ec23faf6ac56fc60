package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/xaenox/spam-detector/internal/service"
	"go.uber.org/zap"
)

// Version is reported by the root and health endpoints.
const Version = "1.0.0"

// BuildServer assembles the echo server: middleware stack, error
// shape, and routes.
func BuildServer(svc *service.Service, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(middleware.CORS())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	h := NewHandlers(svc)

	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.POST("/predict", h.Predict)
	e.POST("/predict/batch", h.PredictBatch)
	e.GET("/metrics", h.Metrics)
	e.POST("/model/reload", h.Reload)

	return e
}

// requestLogger logs method, path, status and server-side latency for
// every request.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Info("Request served",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(begin)),
				zap.Error(err),
			)
			return nil
		}
	}
}

// errorHandler renders every error as the uniform {error, detail}
// body.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("Request failed", zap.Int("status", code), zap.Error(err))
		}

		body := ErrorResponse{
			Error:  http.StatusText(code),
			Detail: detail,
		}
		if jsonErr := c.JSON(code, body); jsonErr != nil {
			logger.Error("Failed to write error response", zap.Error(jsonErr))
		}
	}
}
