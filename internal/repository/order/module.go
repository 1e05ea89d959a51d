package order

import "go.uber.org/fx"

// Module provides the SQL order repository to Fx.
var Module = fx.Provide(NewRepository)
