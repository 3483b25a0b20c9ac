package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// RoleResolver looks up the current account behind a session. Roles are not
// carried in the token, so a demotion takes effect on the next request.
type RoleResolver interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// RBAC enforces role-based access control. It must run after RequireAuth.
func RBAC(resolver RoleResolver, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := Session(c)
			if session == nil {
				return domain.ErrForbidden
			}

			user, err := resolver.Profile(c.Request().Context(), session.UserID)
			if errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("%w: account no longer exists", domain.ErrForbidden)
			}
			if err != nil {
				return err
			}

			if _, ok := allowed[user.Role]; !ok {
				return fmt.Errorf("%w: requires role %v", domain.ErrPermission, allowedRoles)
			}
			c.Set("role", user.Role)
			return next(c)
		}
	}
}
