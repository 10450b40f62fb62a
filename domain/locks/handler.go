package locks

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// Handler handles HTTP requests for cell locks
type Handler struct {
	svc *Service
}

// NewHandler creates a new locks handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Acquire handles POST /api/locks
func (h *Handler) Acquire(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	var req AcquireLockRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid request body")
	}
	if req.SourceID == uuid.Nil || req.TargetID == uuid.Nil {
		return apperror.ErrBadRequest.WithMessage("sourceId and targetId are required")
	}

	pair := Pair{SourceID: req.SourceID, TargetID: req.TargetID}
	lock, err := h.svc.Acquire(c.Request().Context(), user.ProjectID, user.ID, user.SessionID, pair, req.Kind)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, lock)
}

// Release handles DELETE /api/locks/:id
func (h *Handler) Release(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	lockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("Invalid lock id")
	}

	released, err := h.svc.Release(c.Request().Context(), lockID, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"released": released})
}

// List handles GET /api/locks
func (h *Handler) List(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	locks, err := h.svc.ListActive(c.Request().Context(), user.ProjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &LockListResponse{Data: locks})
}

// Sweep handles POST /api/locks/sweep
func (h *Handler) Sweep(c echo.Context) error {
	user := identity.GetUser(c)
	if user == nil {
		return apperror.ErrUnauthorized
	}

	count, err := h.svc.SweepExpired(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int64{"swept": count})
}
