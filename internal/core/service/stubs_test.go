package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func init() {
	// Keep bcrypt fast under test.
	passwordCost = 4
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID        map[string]*domain.User
	seq         int
	findErr     error
	findIDsCall int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("user_%d", r.seq)
	}
	r.byID[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return "", domain.ErrConflict
		}
	}
	return r.add(cloneUser(user)).ID, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.findIDsCall++
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Bulletins
// ---------------------------------------------------------------------------

type stubBulletinRepo struct {
	byID      map[string]*domain.Bulletin
	seq       int
	createErr error
	lastLimit int
}

func newStubBulletinRepo() *stubBulletinRepo {
	return &stubBulletinRepo{byID: make(map[string]*domain.Bulletin)}
}

func (r *stubBulletinRepo) Create(_ context.Context, b *domain.Bulletin) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	clone := *b
	clone.ID = fmt.Sprintf("post_%d", r.seq)
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubBulletinRepo) FindByID(_ context.Context, id string) (*domain.Bulletin, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBulletinNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBulletinRepo) ListByType(_ context.Context, t domain.BulletinType, limit int) ([]*domain.Bulletin, error) {
	r.lastLimit = limit
	var out []*domain.Bulletin
	for _, b := range r.byID {
		if b.Type == t {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubBulletinRepo) Update(_ context.Context, id string, upd ports.BulletinUpdate) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBulletinNotFound
	}
	b.Title = upd.Title
	b.Content = upd.Content
	b.Type = upd.Type
	editedAt := upd.EditedAt
	b.EditedAt = &editedAt
	b.EditedBy = upd.EditedBy
	return nil
}

func (r *stubBulletinRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBulletinNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Activity
// ---------------------------------------------------------------------------

type stubActivityRepo struct {
	insertErr error
	inserted  []*domain.ActivityEvent
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.ActivityEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *e
	r.inserted = append(r.inserted, &clone)
	return nil
}

func (r *stubActivityRepo) Recent(_ context.Context, limit int) ([]*domain.ActivityEvent, error) {
	out := make([]*domain.ActivityEvent, 0, limit)
	for i := len(r.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.inserted[i])
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(e domain.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// ---------------------------------------------------------------------------
// Revocation
// ---------------------------------------------------------------------------

type stubRevocation struct {
	revoked  map[string]time.Time
	checkErr error
}

func newStubRevocation() *stubRevocation {
	return &stubRevocation{revoked: make(map[string]time.Time)}
}

func (s *stubRevocation) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return errors.New("empty token id")
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *stubRevocation) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}
