package presence

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// Handler handles HTTP requests for presence
type Handler struct {
	svc *Service
}

// NewHandler creates a new presence handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Heartbeat handles PUT /api/presence
func (h *Handler) Heartbeat(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	var req HeartbeatRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid request body")
	}

	p, err := h.svc.Heartbeat(c.Request().Context(), user.ProjectID, user.ID, user.SessionID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// ListActive handles GET /api/presence
func (h *Handler) ListActive(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	records, err := h.svc.ListActive(c.Request().Context(), user.ProjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &PresenceListResponse{Data: records})
}

// Leave handles DELETE /api/presence
func (h *Handler) Leave(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	left, err := h.svc.Leave(c.Request().Context(), user.ProjectID, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"left": left})
}
