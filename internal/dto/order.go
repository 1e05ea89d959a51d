package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/ordermanager/internal/entity"
)

// moneyPlaces is the number of fractional digits rendered for monetary values.
const moneyPlaces = 2

// CreateOrderRequest is the inbound payload for POST /orders.
// Pointer fields distinguish a missing value from a zero value.
type CreateOrderRequest struct {
	CustomerName *string             `json:"customer_name" validate:"required,notblank,max=100"`
	ProductName  *string             `json:"product_name" validate:"required,notblank,max=200"`
	Quantity     *int                `json:"quantity" validate:"required,min=1,max=10000"`
	Price        decimal.NullDecimal `json:"price" validate:"required,gte=0,lte=1000000"`
	Status       *string             `json:"status,omitempty" validate:"omitempty,order_status"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID           int64       `json:"id"`
	CustomerName string      `json:"customer_name"`
	ProductName  string      `json:"product_name"`
	Quantity     int         `json:"quantity"`
	Price        json.Number `json:"price"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	TotalAmount  json.Number `json:"total_amount"`
}

// FromEntity maps a stored order to its wire form, deriving the total amount.
func FromEntity(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		ProductName:  order.ProductName,
		Quantity:     order.Quantity,
		Price:        money(order.Price),
		Status:       order.Status.String(),
		CreatedAt:    order.CreatedAt.UTC(),
		TotalAmount:  money(order.TotalAmount()),
	}
}

// FromEntities maps a list of orders, returning an empty (non-nil) slice for no orders.
func FromEntities(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, FromEntity(&orders[i]))
	}
	return out
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(moneyPlaces))
}
