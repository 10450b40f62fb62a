package relationships

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// Handler handles HTTP requests for relationships
type Handler struct {
	svc *Service
}

// NewHandler creates a new relationships handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/relationships
func (h *Handler) Create(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	var req CreateRelationshipRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid request body")
	}

	rel, err := h.svc.Create(c.Request().Context(), user.ProjectID, user.ID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, rel)
}

// Get handles GET /api/relationships/:id
func (h *Handler) Get(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid relationship id")
	}

	rel, err := h.svc.Get(c.Request().Context(), user.ProjectID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rel)
}

// Update handles PATCH /api/relationships/:id
func (h *Handler) Update(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid relationship id")
	}

	var req UpdateRelationshipRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid request body")
	}

	rel, err := h.svc.Update(c.Request().Context(), user.ProjectID, user.ID, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rel)
}

// Delete handles DELETE /api/relationships/:id
func (h *Handler) Delete(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid relationship id")
	}

	if err := h.svc.Delete(c.Request().Context(), user.ProjectID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// Search handles GET /api/relationships/search
func (h *Handler) Search(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	params, err := parseSearchParams(c)
	if err != nil {
		return err
	}

	result, err := h.svc.Search(c.Request().Context(), user.ProjectID, *params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func parseSearchParams(c echo.Context) (*SearchParams, error) {
	params := &SearchParams{}

	if v := c.QueryParam("source_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperror.ErrBadRequest.WithMessage("Invalid source_id")
		}
		params.SourceID = &id
	}
	if v := c.QueryParam("target_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperror.ErrBadRequest.WithMessage("Invalid target_id")
		}
		params.TargetID = &id
	}
	if v := c.QueryParam("cardinality"); v != "" {
		params.Cardinality = &v
	}
	if v := c.QueryParam("strength"); v != "" {
		params.Strength = &v
	}
	if v := c.QueryParam("bidirectional"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperror.ErrBadRequest.WithMessage("Invalid bidirectional flag")
		}
		params.Bidirectional = &b
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, apperror.ErrBadRequest.WithMessage("Invalid offset")
		}
		params.Offset = offset
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return nil, apperror.ErrBadRequest.WithMessage("Invalid limit")
		}
		params.Limit = limit
	}

	return params, nil
}
