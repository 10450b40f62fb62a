package objects

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// Handler handles HTTP requests for objects
type Handler struct {
	svc *Service
}

// NewHandler creates a new objects handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/objects
func (h *Handler) Create(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	var req CreateObjectRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid request body")
	}

	obj, err := h.svc.Create(c.Request().Context(), user.ProjectID, user.ID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, obj)
}

// List handles GET /api/objects
func (h *Handler) List(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	objs, err := h.svc.List(c.Request().Context(), user.ProjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &ObjectListResponse{Data: objs})
}

// Get handles GET /api/objects/:id
func (h *Handler) Get(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid object id")
	}

	obj, err := h.svc.Get(c.Request().Context(), user.ProjectID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, obj)
}

// Update handles PATCH /api/objects/:id
func (h *Handler) Update(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid object id")
	}

	var req UpdateObjectRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid request body")
	}

	obj, err := h.svc.Update(c.Request().Context(), user.ProjectID, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, obj)
}

// Delete handles DELETE /api/objects/:id
func (h *Handler) Delete(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid object id")
	}

	if err := h.svc.Delete(c.Request().Context(), user.ProjectID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
