package ports

import (
	"context"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user and returns the generated id. A duplicate email
	// yields domain.ErrConflict.
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves many users in a single round trip. Unknown ids are
	// silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}
