package ports

import (
	"context"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to IdentityService.
type RegisterInput struct {
	Name     string
	Email    string
	Age      *int // optional
	Password string
}

// IdentityService issues and verifies session tokens.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	// Verify returns nil for any token that is not currently valid. Callers
	// treat nil as unauthenticated, never as an error.
	Verify(ctx context.Context, token string) *domain.Session
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, session *domain.Session) error
}
