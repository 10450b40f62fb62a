package collab

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// Handler handles HTTP requests for cell-edit sessions
type Handler struct {
	svc *Service
}

// NewHandler creates a new collab handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// StartCellEdit handles POST /api/collab/cells/:sourceId/:targetId/edit
func (h *Handler) StartCellEdit(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	pair, err := parsePair(c)
	if err != nil {
		return err
	}

	rowIndex, err := optionalIndex(c, "row")
	if err != nil {
		return err
	}
	colIndex, err := optionalIndex(c, "col")
	if err != nil {
		return err
	}

	result, err := h.svc.StartCellEdit(c.Request().Context(), user.ProjectID, user.ID, user.SessionID, pair, rowIndex, colIndex)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

// FinishCellEdit handles DELETE /api/collab/cells/:sourceId/:targetId/edit
func (h *Handler) FinishCellEdit(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	pair, err := parsePair(c)
	if err != nil {
		return err
	}

	released, err := h.svc.FinishCellEdit(c.Request().Context(), user.ProjectID, user.ID, user.SessionID, pair)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"released": released})
}

func parsePair(c echo.Context) (locks.Pair, error) {
	sourceID, err := uuid.Parse(c.Param("sourceId"))
	if err != nil {
		return locks.Pair{}, apperror.ErrBadRequest.WithMessage("Invalid sourceId")
	}
	targetID, err := uuid.Parse(c.Param("targetId"))
	if err != nil {
		return locks.Pair{}, apperror.ErrBadRequest.WithMessage("Invalid targetId")
	}
	return locks.Pair{SourceID: sourceID, TargetID: targetID}, nil
}

func optionalIndex(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	idx, err := strconv.Atoi(v)
	if err != nil || idx < 0 {
		return nil, apperror.ErrBadRequest.WithMessage("Invalid " + name + " index")
	}
	return &idx, nil
}
