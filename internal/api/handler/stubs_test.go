package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/api/middleware"
	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

// ---- identity ---------------------------------------------------------------

type stubIdentityService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
	logoutFn   func(ctx context.Context, s *domain.Session) error
}

func (s *stubIdentityService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubIdentityService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubIdentityService) Verify(context.Context, string) *domain.Session { return nil }

func (s *stubIdentityService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubIdentityService) Logout(ctx context.Context, session *domain.Session) error {
	return s.logoutFn(ctx, session)
}

// ---- bulletins --------------------------------------------------------------

type stubBulletinService struct {
	listFn     func(ctx context.Context, in ports.ListBulletinsInput) ([]ports.BulletinView, error)
	getFn      func(ctx context.Context, id string, s *domain.Session) (*ports.BulletinView, error)
	createFn   func(ctx context.Context, s *domain.Session, in ports.CreateBulletinInput) (string, error)
	editFn     func(ctx context.Context, s *domain.Session, in ports.EditBulletinInput) (string, error)
	deleteFn   func(ctx context.Context, s *domain.Session, id string) error
	activityFn func(ctx context.Context, limit int) ([]ports.ActivityItem, error)
}

func (s *stubBulletinService) ListBulletins(ctx context.Context, in ports.ListBulletinsInput) ([]ports.BulletinView, error) {
	return s.listFn(ctx, in)
}

func (s *stubBulletinService) GetBulletin(ctx context.Context, id string, session *domain.Session) (*ports.BulletinView, error) {
	return s.getFn(ctx, id, session)
}

func (s *stubBulletinService) CreateBulletin(ctx context.Context, session *domain.Session, in ports.CreateBulletinInput) (string, error) {
	return s.createFn(ctx, session, in)
}

func (s *stubBulletinService) EditBulletin(ctx context.Context, session *domain.Session, in ports.EditBulletinInput) (string, error) {
	return s.editFn(ctx, session, in)
}

func (s *stubBulletinService) DeleteBulletin(ctx context.Context, session *domain.Session, id string) error {
	return s.deleteFn(ctx, session, id)
}

func (s *stubBulletinService) RecentActivity(ctx context.Context, limit int) ([]ports.ActivityItem, error) {
	return s.activityFn(ctx, limit)
}

// ---- helpers ----------------------------------------------------------------

var aliceSession = &domain.Session{UserID: "u_alice", Email: "alice@example.com", TokenID: "jti"}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newRequest builds a context for method/target with an optional JSON body.
func newRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, s *domain.Session) {
	middleware.SetSession(c, s)
}
