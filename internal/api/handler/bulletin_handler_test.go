package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

func TestBulletinHandler_List_GuestDefaults(t *testing.T) {
	e := newTestEcho()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	h := NewBulletinHandler(&stubBulletinService{
		listFn: func(_ context.Context, in ports.ListBulletinsInput) ([]ports.BulletinView, error) {
			if in.Session != nil {
				t.Fatalf("guest request must not carry a session")
			}
			if in.Type != "" || in.Limit != 0 {
				t.Fatalf("defaults are resolved by the service, got %+v", in)
			}
			return []ports.BulletinView{{
				ID: "p1", Title: "Post 1", Content: "hello", Type: "official",
				CreatedBy: "u_alice", CreatorName: "Alice", CreatedAt: created,
			}}, nil
		},
	})

	c, rec := newRequest(e, http.MethodGet, "/posts", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Posts []map[string]any `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Posts) != 1 || resp.Posts[0]["creatorName"] != "Alice" {
		t.Fatalf("unexpected posts: %+v", resp.Posts)
	}
	if _, ok := resp.Posts[0]["editedAt"]; ok {
		t.Fatalf("editedAt must be omitted for unedited posts")
	}
}

func TestBulletinHandler_List_QueryAndSession(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		listFn: func(_ context.Context, in ports.ListBulletinsInput) ([]ports.BulletinView, error) {
			if in.Type != "member" || in.Limit != 10 || in.Session != aliceSession {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, nil
		},
	})

	c, rec := newRequest(e, http.MethodGet, "/posts?type=member&limit=10", "")
	withSession(c, aliceSession)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string][]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if posts, ok := resp["posts"]; !ok || posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty posts array, got %s", rec.Body.String())
	}
}

func TestBulletinHandler_List_MemberWithoutToken(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		listFn: func(context.Context, ports.ListBulletinsInput) ([]ports.BulletinView, error) {
			return nil, domain.ErrForbidden
		},
	})

	c, _ := newRequest(e, http.MethodGet, "/posts?type=member", "")
	if err := h.List(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBulletinHandler_List_BadLimit(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{})

	c, _ := newRequest(e, http.MethodGet, "/posts?limit=lots", "")
	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBulletinHandler_Get(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		getFn: func(_ context.Context, id string, _ *domain.Session) (*ports.BulletinView, error) {
			if id != "p1" {
				return nil, domain.ErrBulletinNotFound
			}
			return &ports.BulletinView{ID: "p1", Title: "t", Content: "**c**", ContentHTML: "<p><strong>c</strong></p>\n"}, nil
		},
	})

	c, rec := newRequest(e, http.MethodGet, "/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["post"]["contentHtml"] != "<p><strong>c</strong></p>\n" {
		t.Fatalf("unexpected post: %+v", resp["post"])
	}

	c, _ = newRequest(e, http.MethodGet, "/posts/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.Get(c); !errors.Is(err, domain.ErrBulletinNotFound) {
		t.Fatalf("expected ErrBulletinNotFound, got %v", err)
	}
}

func TestBulletinHandler_Create(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		createFn: func(_ context.Context, s *domain.Session, in ports.CreateBulletinInput) (string, error) {
			if s != aliceSession || in.Title != "Hi" || in.Type != "official" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "p9", nil
		},
	})

	c, rec := newRequest(e, http.MethodPost, "/createpost", `{"title":"Hi","content":"there","type":"official"}`)
	withSession(c, aliceSession)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["postId"] != "p9" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBulletinHandler_Create_RequiresSession(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{})

	c, _ := newRequest(e, http.MethodPost, "/createpost", `{"title":"Hi","content":"there","type":"member"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBulletinHandler_Create_PermissionDenied(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		createFn: func(context.Context, *domain.Session, ports.CreateBulletinInput) (string, error) {
			return "", domain.ErrPermission
		},
	})

	c, _ := newRequest(e, http.MethodPost, "/createpost", `{"title":"Hi","content":"there","type":"official"}`)
	withSession(c, aliceSession)
	if err := h.Create(c); !errors.Is(err, domain.ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}

func TestBulletinHandler_Edit(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		editFn: func(_ context.Context, _ *domain.Session, in ports.EditBulletinInput) (string, error) {
			if in.ID != "p1" || in.Title != "New" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return in.ID, nil
		},
	})

	c, rec := newRequest(e, http.MethodPost, "/editpost", `{"postId":"p1","title":"New","content":"c","type":"member"}`)
	withSession(c, aliceSession)

	if err := h.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBulletinHandler_Edit_MissingPostID(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{})

	c, _ := newRequest(e, http.MethodPost, "/editpost", `{"title":"New","content":"c","type":"member"}`)
	withSession(c, aliceSession)
	if err := h.Edit(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBulletinHandler_Delete_BodyOrQuery(t *testing.T) {
	cases := []struct {
		name   string
		target string
		body   string
	}{
		{"body", "/deletepost", `{"postId":"p1"}`},
		{"query", "/deletepost?postId=p1", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			var got string
			h := NewBulletinHandler(&stubBulletinService{
				deleteFn: func(_ context.Context, _ *domain.Session, id string) error {
					got = id
					return nil
				},
			})

			c, rec := newRequest(e, http.MethodDelete, tc.target, tc.body)
			withSession(c, aliceSession)

			if err := h.Delete(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got != "p1" {
				t.Fatalf("expected p1, got %q", got)
			}
		})
	}
}

func TestBulletinHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		deleteFn: func(context.Context, *domain.Session, string) error {
			return domain.ErrBulletinNotFound
		},
	})

	c, _ := newRequest(e, http.MethodDelete, "/deletepost?postId=missing", "")
	withSession(c, aliceSession)
	if err := h.Delete(c); !errors.Is(err, domain.ErrBulletinNotFound) {
		t.Fatalf("expected ErrBulletinNotFound, got %v", err)
	}
}

func TestBulletinHandler_Activity(t *testing.T) {
	e := newTestEcho()
	h := NewBulletinHandler(&stubBulletinService{
		activityFn: func(_ context.Context, limit int) ([]ports.ActivityItem, error) {
			if limit != 3 {
				t.Fatalf("expected limit 3, got %d", limit)
			}
			return []ports.ActivityItem{{BulletinID: "p1", Action: "created", ActorID: "u_alice", Type: "official"}}, nil
		},
	})

	c, rec := newRequest(e, http.MethodGet, "/admin/activity?limit=3", "")
	if err := h.Activity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Activity []map[string]any `json:"activity"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Activity) != 1 || resp.Activity[0]["postId"] != "p1" {
		t.Fatalf("unexpected activity: %s", rec.Body.String())
	}
}
