package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

func TestActivityService_Process_Persists(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, discardLogger)

	err := svc.Process(context.Background(), domain.ActivityEvent{
		BulletinID: "post_1",
		Action:     domain.ActivityCreated,
		ActorID:    "bob",
		Type:       domain.BulletinMember,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].BulletinID != "post_1" {
		t.Fatalf("expected event inserted, got %+v", repo.inserted)
	}
}

func TestActivityService_Process_RejectsInvalid(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, discardLogger)

	for _, e := range []domain.ActivityEvent{
		{Action: domain.ActivityCreated},
		{BulletinID: "post_1", Action: "archived"},
	} {
		if err := svc.Process(context.Background(), e); !errors.Is(err, errInvalidActivity) {
			t.Errorf("expected errInvalidActivity for %+v, got %v", e, err)
		}
	}
	if len(repo.inserted) != 0 {
		t.Fatal("expected nothing inserted")
	}
}

func TestActivityService_Process_InsertError(t *testing.T) {
	repo := &stubActivityRepo{insertErr: errors.New("mongo down")}
	svc := NewActivityService(repo, discardLogger)

	err := svc.Process(context.Background(), domain.ActivityEvent{BulletinID: "p", Action: domain.ActivityDeleted})
	if err == nil {
		t.Fatal("expected error")
	}
}
