package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/entity"
	"github.com/Additional-Code/ordermanager/internal/repository/order/ordertest"
	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

var fixedNow = time.Date(2025, 4, 16, 12, 0, 0, 123456789, time.FixedZone("CEST", 2*60*60))

func newTestService(t *testing.T) (*Service, *ordertest.Memory) {
	t.Helper()
	store := ordertest.NewMemory()
	svc, err := NewService(Params{Store: store, Logger: zap.NewNop()})
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestService_Create(t *testing.T) {
	svc, store := newTestService(t)

	order := &entity.Order{
		CustomerName: "Alice Smith",
		ProductName:  "MacBook Pro",
		Quantity:     1,
		Price:        decimal.RequireFromString("2499.00"),
	}
	require.NoError(t, svc.Create(context.Background(), order))

	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, time.UTC, order.CreatedAt.Location())
	assert.True(t, order.CreatedAt.Equal(fixedNow.Truncate(time.Microsecond)))
	assert.Equal(t, "2499.00", order.TotalAmount().StringFixed(2))
	assert.Equal(t, 1, store.Len())

	got, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestService_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		order    *entity.Order
		storeErr error
		wantKind errorbank.Kind
	}{
		{
			name:     "nil_order",
			order:    nil,
			wantKind: errorbank.KindBadRequest,
		},
		{
			name:     "storage_failure",
			order:    &entity.Order{CustomerName: "A", ProductName: "B", Quantity: 1, Price: decimal.NewFromInt(1)},
			storeErr: errors.New("connection reset"),
			wantKind: errorbank.KindStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			store.Err = tt.storeErr

			err := svc.Create(context.Background(), tt.order)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errorbank.From(err).Kind())
			if tt.storeErr != nil {
				assert.True(t, errors.Is(err, tt.storeErr))
			}
			assert.Zero(t, store.Len())
		})
	}
}

func TestService_Get_Errors(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Get(context.Background(), 404)
	assert.True(t, errorbank.Is(err, errorbank.KindNotFound))

	store.Err = errors.New("db gone")
	_, err = svc.Get(context.Background(), 1)
	assert.True(t, errorbank.Is(err, errorbank.KindStorage))
}

func TestService_List(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	empty, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, st := range []entity.Status{entity.StatusPending, entity.StatusShipped, entity.StatusPending} {
		o := &entity.Order{CustomerName: "c", ProductName: "p", Quantity: 1, Price: decimal.NewFromInt(5), Status: st}
		require.NoError(t, svc.Create(ctx, o))
	}

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending := entity.StatusPending
	filtered, err := svc.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)

	store.Err = errors.New("timeout")
	_, err = svc.List(ctx, nil)
	assert.True(t, errorbank.Is(err, errorbank.KindStorage))
}
