package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of an order. Only the constants below are valid.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// ParseStatus converts raw input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Order represents a purchase order stored in the relational database.
// The total amount is never stored; see TotalAmount.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID           int64           `bun:",pk,autoincrement"`
	CustomerName string          `bun:"customer_name,notnull"`
	ProductName  string          `bun:"product_name,notnull"`
	Quantity     int             `bun:"quantity,notnull"`
	Price        decimal.Decimal `bun:"price,type:numeric(12,2),notnull"`
	Status       Status          `bun:"status,notnull,default:'pending'"`
	CreatedAt    time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// TotalAmount returns quantity * price using exact decimal arithmetic.
func TotalAmount(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// TotalAmount derives the order total from its stored quantity and unit price.
func (o *Order) TotalAmount() decimal.Decimal {
	return TotalAmount(o.Quantity, o.Price)
}
