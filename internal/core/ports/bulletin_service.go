package ports

import (
	"context"
	"time"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// ListBulletinsInput carries the listing query. Session is nil for guests.
type ListBulletinsInput struct {
	Type    string
	Limit   int
	Session *domain.Session
}

// CreateBulletinInput carries the fields of a new bulletin.
type CreateBulletinInput struct {
	Title   string
	Content string
	Type    string
}

// EditBulletinInput carries the target id and the replacement fields.
type EditBulletinInput struct {
	ID      string
	Title   string
	Content string
	Type    string
}

// BulletinView is a bulletin annotated with its creator's display name.
type BulletinView struct {
	ID          string
	Title       string
	Content     string
	ContentHTML string // only populated by GetBulletin
	Type        string
	CreatedBy   string
	CreatorName string
	CreatedAt   time.Time
	EditedAt    *time.Time
}

// ActivityItem is a single audit trail entry.
type ActivityItem struct {
	BulletinID string
	Action     string
	ActorID    string
	Type       string
	OccurredAt time.Time
}

// BulletinService defines the bulletin use cases. Every mutating call takes
// the caller's session; a nil session yields domain.ErrForbidden.
type BulletinService interface {
	ListBulletins(ctx context.Context, in ListBulletinsInput) ([]BulletinView, error)
	GetBulletin(ctx context.Context, id string, session *domain.Session) (*BulletinView, error)
	CreateBulletin(ctx context.Context, session *domain.Session, in CreateBulletinInput) (string, error)
	EditBulletin(ctx context.Context, session *domain.Session, in EditBulletinInput) (string, error)
	DeleteBulletin(ctx context.Context, session *domain.Session, id string) error
	RecentActivity(ctx context.Context, limit int) ([]ActivityItem, error)
}
