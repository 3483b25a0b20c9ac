package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

var errInvalidActivity = errors.New("invalid activity event")

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process validates and persists one audit event.
func (s *activityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	switch {
	case event.BulletinID == "":
		return fmt.Errorf("process activity: %w: missing bulletin id", errInvalidActivity)
	case event.Action != domain.ActivityCreated && event.Action != domain.ActivityEdited && event.Action != domain.ActivityDeleted:
		return fmt.Errorf("process activity: %w: unknown action %q", errInvalidActivity, event.Action)
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process activity: insert: %w", err)
	}

	s.log.Debug().
		Str("post_id", event.BulletinID).
		Str("action", string(event.Action)).
		Str("actor_id", event.ActorID).
		Msg("activity recorded")
	return nil
}
