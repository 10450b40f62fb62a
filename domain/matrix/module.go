package matrix

import (
	"go.uber.org/fx"
)

// Module provides the matrix domain
var Module = fx.Module("matrix",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
