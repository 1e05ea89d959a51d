package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/config"
	"github.com/Additional-Code/ordermanager/internal/observability"
	"github.com/Additional-Code/ordermanager/internal/presentation/http/response"
	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

// Module exposes the HTTP server lifecycle to Fx.
var Module = fx.Module("http_server",
	fx.Provide(NewEcho),
	fx.Invoke(Run),
)

// NewEcho configures the Echo router with the service middleware chain.
func NewEcho(cfg config.Config, obs *observability.Manager, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	if obs != nil && obs.TracingEnabled() {
		e.Use(otelecho.Middleware(cfg.Observability.ServiceName))
	}
	e.Use(requestLogger(logger))
	e.Use(middleware.ContextTimeout(cfg.HTTP.RequestTimeout))

	if obs != nil && obs.MetricsEnabled() && obs.MetricsHandler() != nil {
		e.GET(obs.PrometheusPath(), echo.WrapHandler(obs.MetricsHandler()))
	}

	return e
}

// Run starts the HTTP server and ties it to the Fx lifecycle.
func Run(lc fx.Lifecycle, cfg config.Config, e *echo.Echo, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting HTTP server", zap.String("addr", addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			stopCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(stopCtx)
		},
	})
}

// errorHandler renders errors escaping handlers (unknown routes, bad methods, panics)
// in the same shape the response builder uses.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			kind := errorbank.KindInternal
			switch he.Code {
			case http.StatusNotFound:
				kind = errorbank.KindNotFound
			case http.StatusBadRequest, http.StatusMethodNotAllowed:
				kind = errorbank.KindBadRequest
			}
			if he.Code >= http.StatusInternalServerError {
				logger.Error("http request failed", zap.Error(err))
			}
			_ = response.New(c).WithStatus(he.Code).
				WithError(errorbank.New(kind, fmt.Sprint(he.Message), errorbank.WithCause(err))).
				Build()
			return
		}

		logger.Error("http request failed", zap.Error(err))
		_ = response.New(c).WithError(err).Build()
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if cause, ok := c.Get(response.CauseKey).(error); ok {
				logger.Error("request failed", append(fields, zap.Error(cause))...)
				return nil
			}
			if v.Status >= http.StatusBadRequest {
				logger.Warn("request rejected", fields...)
				return nil
			}
			logger.Info("request handled", fields...)
			return nil
		},
	})
}
