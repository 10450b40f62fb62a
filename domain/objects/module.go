package objects

import (
	"go.uber.org/fx"
)

// Module provides the objects domain
var Module = fx.Module("objects",
	fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(Store))),
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
