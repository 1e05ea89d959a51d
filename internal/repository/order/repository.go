package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/ordermanager/internal/database"
	"github.com/Additional-Code/ordermanager/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/ordermanager/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// Filter narrows FindAll. A nil Status matches every order.
type Filter struct {
	Status *entity.Status
}

// Repository encapsulates read/write access for orders.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Insert persists a new order on the write connection and fills its ID.
// It is a single statement, so a failed or cancelled insert leaves no row behind.
func (r *Repository) Insert(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Insert", trace.WithAttributes(
		attribute.String("order.status", order.Status.String()),
	))
	defer span.End()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return err
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	return nil
}

// FindByID fetches an order by primary key using the read replica when available.
func (r *Repository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.FindByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().Model(order).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// FindAll lists orders in insertion (primary key) order, optionally filtered by status.
func (r *Repository) FindAll(ctx context.Context, filter Filter) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.FindAll")
	defer span.End()

	orders := make([]entity.Order, 0)
	q := r.reader.NewSelect().Model(&orders).OrderExpr("id ASC")
	if filter.Status != nil {
		span.SetAttributes(attribute.String("order.status", filter.Status.String()))
		q = q.Where("status = ?", *filter.Status)
	}

	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}
