package matrix

import (
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/identity"
)

// RegisterRoutes registers matrix routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *identity.Middleware) {
	g := e.Group("/api/matrix")
	g.Use(authMiddleware.RequireAuth())

	g.GET("", h.Get)
}
