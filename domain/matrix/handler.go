package matrix

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// Handler handles HTTP requests for the matrix
type Handler struct {
	svc *Service
}

// NewHandler creates a new matrix handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Get handles GET /api/matrix
func (h *Handler) Get(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	m, err := h.svc.Assemble(c.Request().Context(), user.ProjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}
