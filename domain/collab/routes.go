package collab

import (
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/identity"
)

// RegisterRoutes registers collab routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *identity.Middleware) {
	g := e.Group("/api/collab")
	g.Use(authMiddleware.RequireAuth())

	g.POST("/cells/:sourceId/:targetId/edit", h.StartCellEdit)
	g.DELETE("/cells/:sourceId/:targetId/edit", h.FinishCellEdit)
}
