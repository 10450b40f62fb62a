package objects

import (
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/identity"
)

// RegisterRoutes registers object routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *identity.Middleware) {
	g := e.Group("/api/objects")
	g.Use(authMiddleware.RequireAuth())

	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
