package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"supply/internal/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterConfig configures NewRouter.
type RouterConfig struct {
	Logger *slog.Logger
	// RequestTimeout bounds the context handed to use cases. Zero disables it.
	RequestTimeout time.Duration
	// Health reports readiness of dependencies; nil means always healthy.
	Health func(ctx context.Context) error
	// Components adds informational component states to /health, such as
	// circuit breaker states. They never make the service unhealthy.
	Components func() map[string]string
}

// NewRouter builds the echo instance: API routes under BaseURL, plus
// /health, /metrics, /openapi.json and /swagger/*.
func NewRouter(server ServerInterface, doc *openapi3.T, cfg RouterConfig) (*echo.Echo, error) {
	rendered, err := registerDocs(doc)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("actor", c.Request().Header.Get(HeaderActorID)),
			)
			return nil
		},
	}))
	e.Use(metrics.Middleware())
	if cfg.RequestTimeout > 0 {
		e.Use(contextTimeout(cfg.RequestTimeout))
	}

	e.GET("/health", func(c echo.Context) error {
		body := map[string]any{"status": "ok"}
		if cfg.Components != nil {
			body["components"] = cfg.Components()
		}
		if cfg.Health != nil {
			if healthErr := cfg.Health(c.Request().Context()); healthErr != nil {
				body["status"] = "unavailable"
				body["error"] = healthErr.Error()
				return c.JSON(http.StatusServiceUnavailable, body)
			}
		}
		return c.JSON(http.StatusOK, body)
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, rendered)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlersWithBaseURL(e, server, BaseURL)
	return e, nil
}

// contextTimeout bounds the request context. Handlers observe the deadline
// through the context passed to use cases.
func contextTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
