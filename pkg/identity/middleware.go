// Package identity extracts the authenticated caller from trusted gateway
// headers. Token verification happens upstream; by the time a request reaches
// this server, X-User-ID carries a verified identity and X-Project-ID the
// authorized project scope.
package identity

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

// Module provides the identity middleware.
var Module = fx.Module("identity",
	fx.Provide(NewMiddleware),
)

const (
	// HeaderUserID carries the verified caller identity.
	HeaderUserID = "X-User-ID"
	// HeaderProjectID carries the authorized project scope.
	HeaderProjectID = "X-Project-ID"
	// HeaderSessionID carries the client session, used for lock/presence ownership.
	HeaderSessionID = "X-Session-ID"
)

const userContextKey = "identity_user"

// User is the authenticated caller for a single request.
type User struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	SessionID string
}

// GetUser retrieves the authenticated user from the Echo context.
func GetUser(c echo.Context) *User {
	if user, ok := c.Get(userContextKey).(*User); ok {
		return user
	}
	return nil
}

// Middleware resolves gateway identity headers into a User.
type Middleware struct {
	log *slog.Logger
}

// NewMiddleware creates a new identity middleware.
func NewMiddleware(log *slog.Logger) *Middleware {
	return &Middleware{
		log: log.With(logger.Scope("identity")),
	}
}

// RequireAuth returns middleware that requires a verified caller identity
// and project scope on every request.
func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userHeader := c.Request().Header.Get(HeaderUserID)
			if userHeader == "" {
				return apperror.ErrUnauthorized
			}

			userID, err := uuid.Parse(userHeader)
			if err != nil {
				m.log.Warn("malformed user id header", slog.String("value", userHeader))
				return apperror.ErrUnauthorized
			}

			projectHeader := c.Request().Header.Get(HeaderProjectID)
			if projectHeader == "" {
				return apperror.ErrBadRequest.WithMessage("x-project-id header required")
			}

			projectID, err := uuid.Parse(projectHeader)
			if err != nil {
				return apperror.ErrBadRequest.WithMessage("invalid x-project-id header")
			}

			c.Set(userContextKey, &User{
				ID:        userID,
				ProjectID: projectID,
				SessionID: c.Request().Header.Get(HeaderSessionID),
			})

			return next(c)
		}
	}
}
