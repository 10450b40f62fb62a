package relationships

import (
	"go.uber.org/fx"
)

// Module provides the relationships domain
var Module = fx.Module("relationships",
	fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(Store))),
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
