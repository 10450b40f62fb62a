package locks

import (
	"go.uber.org/fx"
)

// Module provides the locks domain
var Module = fx.Module("locks",
	fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(Store))),
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
