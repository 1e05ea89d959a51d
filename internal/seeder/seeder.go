package seeder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/database"
	"github.com/Additional-Code/ordermanager/internal/entity"
)

// Module provides the Seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Orders inserts a handful of sample orders when the table is empty. It
// returns the number of rows written.
func (s *Seeder) Orders(ctx context.Context) (int, error) {
	existing, err := s.db.NewSelect().Model((*entity.Order)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		if s.logger != nil {
			s.logger.Info("orders already present; skipping seed", zap.Int("existing", existing))
		}
		return 0, nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	samples := []entity.Order{
		{CustomerName: "Alice Smith", ProductName: "MacBook Pro", Quantity: 1, Price: decimal.RequireFromString("2499.00"), Status: entity.StatusPending},
		{CustomerName: "Bob Jones", ProductName: "USB-C Cable", Quantity: 3, Price: decimal.RequireFromString("19.99"), Status: entity.StatusConfirmed},
		{CustomerName: "Carol White", ProductName: "Mechanical Keyboard", Quantity: 2, Price: decimal.RequireFromString("129.50"), Status: entity.StatusShipped},
		{CustomerName: "Dan Brown", ProductName: "Monitor Stand", Quantity: 1, Price: decimal.RequireFromString("45.00"), Status: entity.StatusDelivered},
	}
	for i := range samples {
		samples[i].CreatedAt = now
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&samples).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", len(samples)))
	}
	return len(samples), nil
}
