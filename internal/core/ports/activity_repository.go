package ports

import (
	"context"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// ActivityRepository persists the bulletin audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// Recent returns the newest limit events.
	Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error)
}

// ActivityPublisher accepts audit events for asynchronous persistence.
// Publish must not block the caller.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}
