package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/Additional-Code/ordermanager/internal/dto"
	"github.com/Additional-Code/ordermanager/internal/entity"
	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

// pricePlaces is the maximum number of fractional digits accepted for a unit price.
const pricePlaces = 2

// Module provides the shared Validator to Fx.
var Module = fx.Provide(New)

// Validator checks inbound payloads before they reach the service layer.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the order-specific rules registered.
func New() (*Validator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// A pointer keeps "required" about presence, so a zero price still passes it.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(decimal.NullDecimal)
		if !ok || !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return &f
	}, decimal.NullDecimal{})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register notblank: %w", err)
	}
	if err := v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return entity.Status(fl.Field().String()).Valid()
	}); err != nil {
		return nil, fmt.Errorf("register order_status: %w", err)
	}

	return &Validator{validate: v}, nil
}

// DecodeCreateOrder reads a creation payload. Malformed JSON and values of the wrong
// JSON type are reported as bad_request errors naming the field when it is known.
func DecodeCreateOrder(body io.Reader) (*dto.CreateOrderRequest, error) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errorbank.BadRequest("request body is required")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, errorbank.BadRequest("invalid payload",
				errorbank.WithCause(err),
				errorbank.WithDetail(typeErr.Field, "must be "+jsonKind(typeErr.Type)),
			)
		}
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	return &req, nil
}

// CreateOrder validates req and returns the order to persist. Every violated field is
// listed in the error details; nothing is accepted partially.
func (v *Validator) CreateOrder(req *dto.CreateOrderRequest) (*entity.Order, error) {
	if req == nil {
		return nil, errorbank.BadRequest("order payload is required")
	}

	problems := make(map[string]any)
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, errorbank.Internal("validation failed unexpectedly", errorbank.WithCause(err))
		}
		for _, fe := range fieldErrs {
			problems[fe.Field()] = describe(fe)
		}
	}

	if _, seen := problems["price"]; !seen && req.Price.Valid {
		if !req.Price.Decimal.Equal(req.Price.Decimal.Round(pricePlaces)) {
			problems["price"] = fmt.Sprintf("must have at most %d decimal places", pricePlaces)
		}
	}

	if len(problems) > 0 {
		return nil, errorbank.Unprocessable("validation failed", errorbank.WithDetails(problems))
	}

	status := entity.StatusPending
	if req.Status != nil {
		status = entity.Status(*req.Status)
	}

	return &entity.Order{
		CustomerName: strings.TrimSpace(*req.CustomerName),
		ProductName:  strings.TrimSpace(*req.ProductName),
		Quantity:     *req.Quantity,
		Price:        req.Price.Decimal,
		Status:       status,
	}, nil
}

// StatusFilter parses the optional status query parameter. An empty value means no filter.
func StatusFilter(raw string) (*entity.Status, error) {
	if raw == "" {
		return nil, nil
	}
	status, err := entity.ParseStatus(raw)
	if err != nil {
		return nil, errorbank.BadRequest("invalid status filter",
			errorbank.WithCause(err),
			errorbank.WithDetail("status", allowedStatuses()),
		)
	}
	return &status, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "order_status":
		return allowedStatuses()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return "a " + t.String()
	}
}

func allowedStatuses() string {
	names := make([]string, 0, 5)
	for _, s := range entity.Statuses() {
		names = append(names, s.String())
	}
	return "must be one of " + strings.Join(names, ", ")
}
