package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

// passwordCost matches the salt rounds the mobile backend has always used.
var passwordCost = 12

// RevocationStore abstracts the revoked-token list (Redis).
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IdentityService implements registration, login and token verification.
type IdentityService struct {
	users   ports.UserRepository
	tokens  *TokenIssuer
	revoked RevocationStore
	log     zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, tokens *TokenIssuer, revoked RevocationStore, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, tokens: tokens, revoked: revoked, log: log}
}

// NormalizeEmail trims and case-folds an address so lookups and the unique
// index agree on a single spelling.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return "", fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	}
	if in.Age != nil && *in.Age < 0 {
		return "", fmt.Errorf("%w: age must not be negative", domain.ErrValidation)
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", domain.ErrConflict
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", fmt.Errorf("register: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	id, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		Age:          in.Age,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("user registered")
	return id, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

func (s *IdentityService) Verify(ctx context.Context, token string) *domain.Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	session, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil
	}

	revoked, err := s.revoked.IsRevoked(ctx, session.TokenID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", session.UserID).Msg("revocation check failed, accepting token")
		return session
	}
	if revoked {
		return nil
	}
	return session
}

func (s *IdentityService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Logout revokes the session's token until it would have expired anyway.
func (s *IdentityService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrForbidden
	}
	if err := s.revoked.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", session.UserID).Msg("session revoked")
	return nil
}
