package locks

import (
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/identity"
)

// RegisterRoutes registers lock routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *identity.Middleware) {
	g := e.Group("/api/locks")
	g.Use(authMiddleware.RequireAuth())

	g.POST("", h.Acquire)
	g.GET("", h.List)
	g.DELETE("/:id", h.Release)
	g.POST("/sweep", h.Sweep)
}
