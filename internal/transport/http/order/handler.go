package order

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/ordermanager/internal/dto"
	"github.com/Additional-Code/ordermanager/internal/presentation/http/response"
	service "github.com/Additional-Code/ordermanager/internal/service/order"
	"github.com/Additional-Code/ordermanager/internal/validation"
	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/ordermanager/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc       *service.Service
	validator *validation.Validator
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service, v *validation.Validator) *Handler {
	return &Handler{svc: svc, validator: v}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.POST("", h.create)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	status, err := validation.StatusFilter(c.QueryParam("status"))
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx, status)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromEntities(orders)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return b.WithError(errorbank.BadRequest("invalid id",
			errorbank.WithDetail("id", "must be a positive integer"),
			errorbank.WithCause(err),
		)).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromEntity(order)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	req, err := validation.DecodeCreateOrder(c.Request().Body)
	if err != nil {
		return b.WithError(err).Build()
	}
	order, err := h.validator.CreateOrder(req)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create")
	span.SetAttributes(
		attribute.String("order.status", order.Status.String()),
		attribute.Int("order.quantity", order.Quantity),
	)
	defer span.End()

	if err := h.svc.Create(ctx, order); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).
		WithHeader(echo.HeaderLocation, fmt.Sprintf("/orders/%d", order.ID)).
		WithData(dto.FromEntity(order)).
		Build()
}
