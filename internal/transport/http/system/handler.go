package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/config"
	"github.com/Additional-Code/ordermanager/internal/database"
	"github.com/Additional-Code/ordermanager/internal/dto"
	"github.com/Additional-Code/ordermanager/internal/presentation/http/response"
)

const probeTimeout = 2 * time.Second

var errNoProber = errors.New("no database prober configured")

// Prober checks storage connectivity.
type Prober interface {
	Probe(ctx context.Context) error
}

// Handler serves the root metadata and health endpoints.
type Handler struct {
	app    config.App
	prober Prober
	logger *zap.Logger
	now    func() time.Time
}

// Params defines dependencies for constructing Handler.
type Params struct {
	fx.In

	Config config.Config
	Prober Prober
	Logger *zap.Logger
}

// Module wires the system endpoints, probing the primary database.
var Module = fx.Options(
	fx.Provide(
		NewHandler,
		func(c *database.Connections) Prober { return c },
	),
	fx.Invoke(Register),
)

// NewHandler constructs a system Handler.
func NewHandler(p Params) *Handler {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{app: p.Config.App, prober: p.Prober, logger: logger, now: time.Now}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/", h.info)
	e.GET("/health", h.health)
}

func (h *Handler) info(c echo.Context) error {
	return response.New(c).WithData(dto.InfoResponse{
		Name:        h.app.Name,
		Version:     h.app.Version,
		Description: h.app.Description,
		Endpoints: map[string]string{
			"health":       "GET /health",
			"list_orders":  "GET /orders",
			"get_order":    "GET /orders/{id}",
			"create_order": "POST /orders",
		},
	}).Build()
}

// health always answers 200; storage failures are reported in the payload.
func (h *Handler) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	payload := dto.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Database:  "connected",
	}
	if err := h.probe(ctx); err != nil {
		h.logger.Warn("database probe failed", zap.Error(err))
		payload.Status = "unhealthy"
		payload.Database = "disconnected"
	}

	return response.New(c).WithData(payload).Build()
}

func (h *Handler) probe(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	if h.prober == nil {
		return errNoProber
	}
	return h.prober.Probe(ctx)
}
