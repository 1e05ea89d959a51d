package order

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/entity"
	repo "github.com/Additional-Code/ordermanager/internal/repository/order"
	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

const instrumentation = "github.com/Additional-Code/ordermanager/service/order"

var serviceTracer = otel.Tracer(instrumentation)

// Store is the persistence contract the service relies on.
type Store interface {
	Insert(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	FindAll(ctx context.Context, filter repo.Filter) ([]entity.Order, error)
}

// Service encapsulates business logic around orders.
type Service struct {
	store   Store
	logger  *zap.Logger
	now     func() time.Time
	created metric.Int64Counter
	failed  metric.Int64Counter
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Store  Store
	Logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) (*Service, error) {
	meter := otel.Meter(instrumentation)
	created, err := meter.Int64Counter("orders.created",
		metric.WithDescription("Orders persisted successfully."))
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter("orders.create.failed",
		metric.WithDescription("Order creations rejected by storage."))
	if err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:   p.Store,
		logger:  logger,
		now:     time.Now,
		created: created,
		failed:  failed,
	}, nil
}

// Create stamps and persists a validated order. ID is filled on success.
func (s *Service) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errorbank.BadRequest("order payload is required")
	}
	if order.Status == "" {
		order.Status = entity.StatusPending
	}
	// Truncate to the precision every supported database keeps, so reads match the response.
	order.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(
		attribute.String("order.status", order.Status.String()),
	))
	defer span.End()

	if err := s.store.Insert(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		s.failed.Add(ctx, 1)
		s.logger.Error("order insert failed", zap.Error(err))
		return errorbank.Storage("failed to create order", errorbank.WithCause(err))
	}

	s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("status", order.Status.String())))
	s.logger.Info("order created",
		zap.Int64("id", order.ID),
		zap.String("status", order.Status.String()),
		zap.Int("quantity", order.Quantity),
		zap.String("total_amount", order.TotalAmount().StringFixed(2)),
	)
	return nil
}

// Get retrieves an order by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found", errorbank.WithDetail("id", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		s.logger.Error("order lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, errorbank.Storage("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// List returns all orders in insertion order, optionally restricted to one status.
// The result is never nil.
func (s *Service) List(ctx context.Context, status *entity.Status) ([]entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()
	if status != nil {
		span.SetAttributes(attribute.String("order.status", status.String()))
	}

	orders, err := s.store.FindAll(ctx, repo.Filter{Status: status})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		s.logger.Error("order listing failed", zap.Error(err))
		return nil, errorbank.Storage("failed to list orders", errorbank.WithCause(err))
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}
