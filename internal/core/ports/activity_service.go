package ports

import (
	"context"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// ActivityService persists a single audit event pulled off the dispatcher.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
}
