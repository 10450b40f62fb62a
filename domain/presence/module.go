package presence

import (
	"go.uber.org/fx"
)

// Module provides the presence domain
var Module = fx.Module("presence",
	fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(Store))),
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
