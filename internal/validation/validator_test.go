package validation_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/ordermanager/internal/entity"
	"github.com/Additional-Code/ordermanager/internal/validation"
	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.New()
	require.NoError(t, err)
	return v
}

func TestValidator_CreateOrder_Valid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name       string
		body       string
		wantStatus entity.Status
		wantPrice  string
		wantTotal  string
	}{
		{
			name:       "defaults_to_pending",
			body:       `{"customer_name":"Alice Smith","product_name":"MacBook Pro","quantity":1,"price":2499.00}`,
			wantStatus: entity.StatusPending,
			wantPrice:  "2499",
			wantTotal:  "2499",
		},
		{
			name:       "explicit_status",
			body:       `{"customer_name":"Bob","product_name":"Cable","quantity":3,"price":0.10,"status":"shipped"}`,
			wantStatus: entity.StatusShipped,
			wantPrice:  "0.1",
			wantTotal:  "0.3",
		},
		{
			name:       "zero_price_is_allowed",
			body:       `{"customer_name":"Carol","product_name":"Sticker","quantity":10000,"price":0}`,
			wantStatus: entity.StatusPending,
			wantPrice:  "0",
			wantTotal:  "0",
		},
		{
			name:       "quoted_price_and_trimmed_names",
			body:       `{"customer_name":"  Dave ","product_name":" Desk","quantity":2,"price":"1000000.00"}`,
			wantStatus: entity.StatusPending,
			wantPrice:  "1000000",
			wantTotal:  "2000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := validation.DecodeCreateOrder(strings.NewReader(tt.body))
			require.NoError(t, err)

			order, err := v.CreateOrder(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, order.Status)
			assert.Zero(t, order.ID)
			assert.True(t, order.CreatedAt.IsZero())
			assert.True(t, decimal.RequireFromString(tt.wantPrice).Equal(order.Price))
			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(order.TotalAmount()))
			assert.Equal(t, strings.TrimSpace(order.CustomerName), order.CustomerName)
		})
	}
}

func TestValidator_CreateOrder_Invalid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		body    string
		details map[string]any
	}{
		{
			name: "zero_quantity",
			body: `{"customer_name":"Alice","product_name":"MacBook Pro","quantity":0,"price":10}`,
			details: map[string]any{
				"quantity": "must be at least 1",
			},
		},
		{
			name: "negative_price",
			body: `{"customer_name":"Alice","product_name":"MacBook Pro","quantity":1,"price":-0.01}`,
			details: map[string]any{
				"price": "must be at least 0",
			},
		},
		{
			name: "empty_names",
			body: `{"customer_name":"","product_name":"   ","quantity":1,"price":10}`,
			details: map[string]any{
				"customer_name": "must not be blank",
				"product_name":  "must not be blank",
			},
		},
		{
			name: "everything_missing",
			body: `{}`,
			details: map[string]any{
				"customer_name": "is required",
				"product_name":  "is required",
				"quantity":      "is required",
				"price":         "is required",
			},
		},
		{
			name: "null_price",
			body: `{"customer_name":"Alice","product_name":"Pen","quantity":1,"price":null}`,
			details: map[string]any{
				"price": "is required",
			},
		},
		{
			name: "unknown_status",
			body: `{"customer_name":"Alice","product_name":"Pen","quantity":1,"price":1,"status":"processing"}`,
			details: map[string]any{
				"status": "must be one of pending, confirmed, shipped, delivered, cancelled",
			},
		},
		{
			name: "bounds",
			body: `{"customer_name":"` + strings.Repeat("a", 101) + `","product_name":"Pen","quantity":10001,"price":1000000.01}`,
			details: map[string]any{
				"customer_name": "must be at most 100 characters",
				"quantity":      "must be at most 10000",
				"price":         "must be at most 1000000",
			},
		},
		{
			name: "sub_cent_price",
			body: `{"customer_name":"Alice","product_name":"Pen","quantity":1,"price":1.005}`,
			details: map[string]any{
				"price": "must have at most 2 decimal places",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := validation.DecodeCreateOrder(strings.NewReader(tt.body))
			require.NoError(t, err)

			order, err := v.CreateOrder(req)
			require.Error(t, err)
			assert.Nil(t, order)

			appErr := errorbank.From(err)
			assert.Equal(t, errorbank.KindUnprocessableEntity, appErr.Kind())
			assert.Equal(t, tt.details, appErr.Details())
		})
	}
}

func TestValidator_CreateOrder_Nil(t *testing.T) {
	_, err := newValidator(t).CreateOrder(nil)
	assert.True(t, errorbank.Is(err, errorbank.KindBadRequest))
}

func TestDecodeCreateOrder_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		details map[string]any
	}{
		{name: "empty_body", body: "", message: "request body is required"},
		{name: "broken_json", body: `{"customer_name":`, message: "invalid payload"},
		{
			name:    "fractional_quantity",
			body:    `{"quantity":1.5}`,
			message: "invalid payload",
			details: map[string]any{"quantity": "must be an integer"},
		},
		{
			name:    "numeric_name",
			body:    `{"customer_name":7}`,
			message: "invalid payload",
			details: map[string]any{"customer_name": "must be a string"},
		},
		{name: "non_numeric_price", body: `{"price":"cheap"}`, message: "invalid payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validation.DecodeCreateOrder(strings.NewReader(tt.body))
			require.Error(t, err)

			appErr := errorbank.From(err)
			assert.Equal(t, errorbank.KindBadRequest, appErr.Kind())
			assert.Equal(t, tt.message, appErr.Message())
			if tt.details != nil {
				assert.Equal(t, tt.details, appErr.Details())
			}
		})
	}
}

func TestStatusFilter(t *testing.T) {
	status, err := validation.StatusFilter("")
	require.NoError(t, err)
	assert.Nil(t, status)

	status, err = validation.StatusFilter("delivered")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusDelivered, *status)

	_, err = validation.StatusFilter("lost")
	require.Error(t, err)
	assert.True(t, errorbank.Is(err, errorbank.KindBadRequest))
}
