package presence

import (
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/identity"
)

// RegisterRoutes registers presence routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *identity.Middleware) {
	g := e.Group("/api/presence")
	g.Use(authMiddleware.RequireAuth())

	g.PUT("", h.Heartbeat)
	g.GET("", h.ListActive)
	g.DELETE("", h.Leave)
}
