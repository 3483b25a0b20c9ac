package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/api/middleware"
	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// ctxSession returns the caller's session, or nil for guests.
func ctxSession(c echo.Context) *domain.Session {
	return middleware.Session(c)
}

// requireSession performs the fast-fail check for routes behind RequireAuth:
// a missing session means the middleware did not run.
func requireSession(c echo.Context) (*domain.Session, error) {
	s := ctxSession(c)
	if s == nil {
		return nil, domain.ErrForbidden
	}
	return s, nil
}
