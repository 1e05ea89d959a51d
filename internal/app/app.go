package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/ordermanager/internal/config"
	"github.com/Additional-Code/ordermanager/internal/database"
	"github.com/Additional-Code/ordermanager/internal/logger"
	"github.com/Additional-Code/ordermanager/internal/migration"
	"github.com/Additional-Code/ordermanager/internal/observability"
	repositoryorder "github.com/Additional-Code/ordermanager/internal/repository/order"
	httpserver "github.com/Additional-Code/ordermanager/internal/server/http"
	serviceorder "github.com/Additional-Code/ordermanager/internal/service/order"
	transporthttp "github.com/Additional-Code/ordermanager/internal/transport/http"
	"github.com/Additional-Code/ordermanager/internal/validation"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	database.Module,
	logger.Module,
	observability.Module,
	validation.Module,
	repositoryorder.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules and applies
// pending migrations before the listener opens.
var HTTP = fx.Options(
	Core,
	migration.AutoModule,
	httpserver.Module,
	transporthttp.Module,
)

// Module is the default application wiring.
var Module = HTTP
