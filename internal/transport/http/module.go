package http

import (
	"go.uber.org/fx"

	ordertransport "github.com/Additional-Code/ordermanager/internal/transport/http/order"
	systemtransport "github.com/Additional-Code/ordermanager/internal/transport/http/system"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	systemtransport.Module,
	ordertransport.Module,
)
