// Package ordertest provides an in-memory order repository for tests.
package ordertest

import (
	"context"
	"sync"

	"github.com/Additional-Code/ordermanager/internal/entity"
	repo "github.com/Additional-Code/ordermanager/internal/repository/order"
)

// Memory mimics the SQL repository: ids start at 1 and are never reused,
// FindAll returns insertion order. Set Err to make every call fail.
type Memory struct {
	mu     sync.Mutex
	orders []entity.Order
	nextID int64

	Err error
}

// NewMemory returns an empty repository.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// Insert stores a copy of order and assigns its ID.
func (m *Memory) Insert(ctx context.Context, order *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail(ctx); err != nil {
		return err
	}
	order.ID = m.nextID
	m.nextID++
	m.orders = append(m.orders, *order)
	return nil
}

// FindByID returns a copy of the stored order or repo.ErrNotFound.
func (m *Memory) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	for i := range m.orders {
		if m.orders[i].ID == id {
			found := m.orders[i]
			return &found, nil
		}
	}
	return nil, repo.ErrNotFound
}

// FindAll returns stored orders matching filter.
func (m *Memory) FindAll(ctx context.Context, filter repo.Filter) ([]entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// Len reports how many orders are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *Memory) fail(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	return ctx.Err()
}
