package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/ordermanager/pkg/errorbank"
)

// CauseKey is the echo context key holding a server-side failure for request logging.
const CauseKey = "response.cause"

// Builder helps construct consistent HTTP responses. Successful responses carry the
// resource itself; failures carry an {"error": {...}} object.
type Builder struct {
	ctx     echo.Context
	status  int
	data    any
	err     error
	headers map[string]string
}

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure.
type ErrorDetail struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// WithHeader sets a response header.
func (b *Builder) WithHeader(key, value string) *Builder {
	if key == "" {
		return b
	}
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[key] = value
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	for k, v := range b.headers {
		b.ctx.Response().Header().Set(k, v)
	}
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.ctx.JSON(b.status, b.data)
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}
	if status >= http.StatusInternalServerError {
		// Surfaced to the echo error logger; clients only see the message.
		b.ctx.Set(CauseKey, appErr)
	}

	return b.ctx.JSON(status, ErrorBody{Error: ErrorDetail{
		Kind:    string(appErr.Kind()),
		Message: appErr.Message(),
		Details: appErr.Details(),
	}})
}
