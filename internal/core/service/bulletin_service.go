package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

const (
	defaultListLimit     = 5
	maxListLimit         = 50
	defaultActivityLimit = 20
	maxActivityLimit     = 100
	unknownCreatorName   = "Unknown"
)

type BulletinService struct {
	bulletins ports.BulletinRepository
	users     ports.UserRepository
	activity  ports.ActivityRepository
	publisher ports.ActivityPublisher
	content   *contentPolicy
	logger    zerolog.Logger
}

func NewBulletinService(
	bulletins ports.BulletinRepository,
	users ports.UserRepository,
	activity ports.ActivityRepository,
	publisher ports.ActivityPublisher,
	logger zerolog.Logger,
) *BulletinService {
	return &BulletinService{
		bulletins: bulletins,
		users:     users,
		activity:  activity,
		publisher: publisher,
		content:   newContentPolicy(),
		logger:    logger,
	}
}

// ListBulletins returns the newest bulletins of the requested type. Official
// bulletins are public; member bulletins need a session.
func (s *BulletinService) ListBulletins(ctx context.Context, in ports.ListBulletinsInput) ([]ports.BulletinView, error) {
	t := domain.BulletinType(strings.ToLower(strings.TrimSpace(in.Type)))
	if t == "" {
		t = domain.BulletinOfficial
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: invalid post type", domain.ErrValidation)
	}
	if !t.Public() && in.Session == nil {
		return nil, fmt.Errorf("%w: sign in to view member posts", domain.ErrForbidden)
	}

	items, err := s.bulletins.ListByType(ctx, t, clampLimit(in.Limit, defaultListLimit, maxListLimit))
	if err != nil {
		return nil, fmt.Errorf("list bulletins: %w", err)
	}

	names, err := s.creatorNames(ctx, items)
	if err != nil {
		return nil, err
	}

	views := make([]ports.BulletinView, 0, len(items))
	for _, b := range items {
		views = append(views, toView(b, names))
	}
	return views, nil
}

// GetBulletin returns a single bulletin with its content rendered to HTML.
func (s *BulletinService) GetBulletin(ctx context.Context, id string, session *domain.Session) (*ports.BulletinView, error) {
	b, err := s.bulletins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Type.Public() && session == nil {
		return nil, fmt.Errorf("%w: sign in to view member posts", domain.ErrForbidden)
	}

	names, err := s.creatorNames(ctx, []*domain.Bulletin{b})
	if err != nil {
		return nil, err
	}
	view := toView(b, names)
	view.ContentHTML = s.content.render(b.Content)
	return &view, nil
}

func (s *BulletinService) CreateBulletin(ctx context.Context, session *domain.Session, in ports.CreateBulletinInput) (string, error) {
	if session == nil {
		return "", domain.ErrForbidden
	}

	fields, err := s.normalize(in.Title, in.Content, in.Type)
	if err != nil {
		return "", err
	}

	requester, err := s.requester(ctx, session)
	if err != nil {
		return "", err
	}
	if !domain.CanPublish(requester.Role, fields.Type) {
		return "", fmt.Errorf("%w: only admin users can create official posts", domain.ErrPermission)
	}

	b := &domain.Bulletin{
		Title:     fields.Title,
		Content:   fields.Content,
		Type:      fields.Type,
		CreatedBy: requester.ID,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.bulletins.Create(ctx, b)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create bulletin")
		return "", fmt.Errorf("create bulletin: %w", err)
	}

	s.record(id, domain.ActivityCreated, requester.ID, fields.Type)
	s.logger.Info().Str("post_id", id).Str("type", string(fields.Type)).Str("user_id", requester.ID).Msg("bulletin created")
	return id, nil
}

// EditBulletin replaces title, content and type. The original creator is kept;
// the editor is recorded separately.
func (s *BulletinService) EditBulletin(ctx context.Context, session *domain.Session, in ports.EditBulletinInput) (string, error) {
	if session == nil {
		return "", domain.ErrForbidden
	}
	if strings.TrimSpace(in.ID) == "" {
		return "", fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	}

	requester, err := s.requester(ctx, session)
	if err != nil {
		return "", err
	}

	existing, err := s.bulletins.FindByID(ctx, in.ID)
	if err != nil {
		return "", err
	}
	// An official post stays admin-only even when a member is its creator.
	if !domain.CanPublish(requester.Role, existing.Type) {
		return "", fmt.Errorf("%w: only admin users can edit official posts", domain.ErrPermission)
	}
	if !domain.CanModify(requester.Role, requester.ID, existing.CreatedBy) {
		return "", fmt.Errorf("%w: you are unable to edit this post", domain.ErrPermission)
	}

	fields, err := s.normalize(in.Title, in.Content, in.Type)
	if err != nil {
		return "", err
	}
	if !domain.CanPublish(requester.Role, fields.Type) {
		return "", fmt.Errorf("%w: only admin users can edit official posts", domain.ErrPermission)
	}

	err = s.bulletins.Update(ctx, existing.ID, ports.BulletinUpdate{
		Title:    fields.Title,
		Content:  fields.Content,
		Type:     fields.Type,
		EditedAt: time.Now().UTC(),
		EditedBy: requester.ID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBulletinNotFound) {
			return "", err
		}
		return "", fmt.Errorf("edit bulletin: %w", err)
	}

	s.record(existing.ID, domain.ActivityEdited, requester.ID, fields.Type)
	s.logger.Info().Str("post_id", existing.ID).Str("user_id", requester.ID).Msg("bulletin edited")
	return existing.ID, nil
}

func (s *BulletinService) DeleteBulletin(ctx context.Context, session *domain.Session, id string) error {
	if session == nil {
		return domain.ErrForbidden
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: postId is required", domain.ErrValidation)
	}

	requester, err := s.requester(ctx, session)
	if err != nil {
		return err
	}

	existing, err := s.bulletins.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanModify(requester.Role, requester.ID, existing.CreatedBy) {
		return fmt.Errorf("%w: you are unable to delete this post", domain.ErrPermission)
	}

	if err := s.bulletins.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, domain.ErrBulletinNotFound) {
			return err
		}
		return fmt.Errorf("delete bulletin: %w", err)
	}

	s.record(existing.ID, domain.ActivityDeleted, requester.ID, existing.Type)
	s.logger.Info().Str("post_id", existing.ID).Str("user_id", requester.ID).Msg("bulletin deleted")
	return nil
}

// RecentActivity returns the newest audit trail entries.
func (s *BulletinService) RecentActivity(ctx context.Context, limit int) ([]ports.ActivityItem, error) {
	events, err := s.activity.Recent(ctx, clampLimit(limit, defaultActivityLimit, maxActivityLimit))
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	items := make([]ports.ActivityItem, 0, len(events))
	for _, e := range events {
		items = append(items, ports.ActivityItem{
			BulletinID: e.BulletinID,
			Action:     string(e.Action),
			ActorID:    e.ActorID,
			Type:       string(e.Type),
			OccurredAt: e.OccurredAt,
		})
	}
	return items, nil
}

type bulletinFields struct {
	Title   string
	Content string
	Type    domain.BulletinType
}

// normalize strips markup from title and content and checks every field.
func (s *BulletinService) normalize(title, content, typ string) (bulletinFields, error) {
	f := bulletinFields{
		Title:   s.content.plain(title),
		Content: s.content.plain(content),
		Type:    domain.BulletinType(strings.ToLower(strings.TrimSpace(typ))),
	}

	switch {
	case f.Title == "" || f.Content == "" || f.Type == "":
		return f, fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	case !f.Type.Valid():
		return f, fmt.Errorf("%w: invalid post type", domain.ErrValidation)
	case utf8.RuneCountInString(f.Title) > domain.MaxTitleLength:
		return f, fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, domain.MaxTitleLength)
	case utf8.RuneCountInString(f.Content) > domain.MaxContentLength:
		return f, fmt.Errorf("%w: content must be at most %d characters", domain.ErrValidation, domain.MaxContentLength)
	}
	return f, nil
}

// requester loads the caller's account so role checks always see the
// current role rather than whatever was true when the token was issued.
func (s *BulletinService) requester(ctx context.Context, session *domain.Session) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", domain.ErrForbidden)
		}
		return nil, fmt.Errorf("load requester: %w", err)
	}
	return user, nil
}

// creatorNames resolves display names for the distinct creators in items with
// a single repository call.
func (s *BulletinService) creatorNames(ctx context.Context, items []*domain.Bulletin) (map[string]string, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, b := range items {
		if _, ok := seen[b.CreatedBy]; ok || b.CreatedBy == "" {
			continue
		}
		seen[b.CreatedBy] = struct{}{}
		ids = append(ids, b.CreatedBy)
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve creators: %w", err)
	}
	for id, u := range users {
		names[id] = u.Name
	}
	return names, nil
}

func (s *BulletinService) record(id string, action domain.ActivityAction, actorID string, t domain.BulletinType) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.ActivityEvent{
		BulletinID: id,
		Action:     action,
		ActorID:    actorID,
		Type:       t,
		OccurredAt: time.Now().UTC(),
	})
}

func toView(b *domain.Bulletin, names map[string]string) ports.BulletinView {
	name, ok := names[b.CreatedBy]
	if !ok {
		name = unknownCreatorName
	}
	return ports.BulletinView{
		ID:          b.ID,
		Title:       b.Title,
		Content:     b.Content,
		Type:        string(b.Type),
		CreatedBy:   b.CreatedBy,
		CreatorName: name,
		CreatedAt:   b.CreatedAt,
		EditedAt:    b.EditedAt,
	}
}

func clampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
