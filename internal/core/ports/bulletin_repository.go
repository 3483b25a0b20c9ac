package ports

import (
	"context"
	"time"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// BulletinUpdate carries the mutable fields written by an edit.
type BulletinUpdate struct {
	Title    string
	Content  string
	Type     domain.BulletinType
	EditedAt time.Time
	EditedBy string
}

// BulletinRepository defines persistence operations for bulletins.
type BulletinRepository interface {
	Create(ctx context.Context, b *domain.Bulletin) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Bulletin, error)
	// ListByType returns at most limit bulletins of the given type, newest first.
	ListByType(ctx context.Context, t domain.BulletinType, limit int) ([]*domain.Bulletin, error)
	Update(ctx context.Context, id string, upd BulletinUpdate) error
	Delete(ctx context.Context, id string) error
}
