package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

const sessionKey = "session"

// TokenVerifier resolves a raw token to a session, or nil when the token is
// not currently valid.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) *domain.Session
}

// RequireAuth rejects requests without a valid token and injects the session
// into the context otherwise.
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return RequireAuthWith(v, domain.ErrForbidden)
}

// RequireAuthWith behaves like RequireAuth but wraps rejections in reject, so
// a route can answer 401 instead of 403 for a missing or invalid token.
func RequireAuthWith(v TokenVerifier, reject error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromHeader(c)
			if token == "" {
				return fmt.Errorf("%w: missing authorization header", reject)
			}
			session := v.Verify(c.Request().Context(), token)
			if session == nil {
				return fmt.Errorf("%w: invalid or expired token", reject)
			}
			SetSession(c, session)
			return next(c)
		}
	}
}

// OptionalAuth injects the session when a valid token is present and lets
// the request through as a guest otherwise.
func OptionalAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := tokenFromHeader(c); token != "" {
				if session := v.Verify(c.Request().Context(), token); session != nil {
					SetSession(c, session)
				}
			}
			return next(c)
		}
	}
}

// Session returns the session injected by RequireAuth or OptionalAuth, or nil.
func Session(c echo.Context) *domain.Session {
	s, _ := c.Get(sessionKey).(*domain.Session)
	return s
}

// SetSession stores s as the caller's session.
func SetSession(c echo.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}

// tokenFromHeader accepts both the raw token and the "Bearer <token>" form.
func tokenFromHeader(c echo.Context) string {
	h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		h = strings.TrimSpace(h[7:])
	}
	return h
}
