package health

import "go.uber.org/fx"

// Module provides health check dependencies
var Module = fx.Module("health",
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
