package collab

import (
	"go.uber.org/fx"
)

// Module provides the collab domain
var Module = fx.Module("collab",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
