package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

type stubResolver struct {
	users map[string]*domain.User
	err   error
}

func (r *stubResolver) Profile(_ context.Context, userID string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func resolverWith(role string) *stubResolver {
	return &stubResolver{users: map[string]*domain.User{"u1": {ID: "u1", Role: role}}}
}

func TestRBAC_Allows(t *testing.T) {
	c, rec := newContext("")
	c.Set(sessionKey, &domain.Session{UserID: "u1"})

	called := false
	handler := RBAC(resolverWith(domain.RoleAdmin), domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		if c.Get("role") != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsOtherRoles(t *testing.T) {
	c, _ := newContext("")
	c.Set(sessionKey, &domain.Session{UserID: "u1"})

	handler := RBAC(resolverWith(domain.RoleMember), domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}

func TestRBAC_RequiresSession(t *testing.T) {
	c, _ := newContext("")

	handler := RBAC(resolverWith(domain.RoleAdmin), domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_DeletedAccount(t *testing.T) {
	c, _ := newContext("")
	c.Set(sessionKey, &domain.Session{UserID: "gone"})

	handler := RBAC(resolverWith(domain.RoleAdmin), domain.RoleAdmin)(func(c echo.Context) error { return nil })

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_StoreFailurePropagates(t *testing.T) {
	c, _ := newContext("")
	c.Set(sessionKey, &domain.Session{UserID: "u1"})
	boom := errors.New("mongo down")

	handler := RBAC(&stubResolver{err: boom}, domain.RoleAdmin)(func(c echo.Context) error { return nil })

	if err := handler(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
