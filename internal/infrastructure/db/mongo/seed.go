package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// SeedUser describes an account created by Seed.
type SeedUser struct {
	Name  string
	Email string
	Role  string
}

// DefaultSeedUsers are the demo accounts: Alice (admin) and Bob (member).
var DefaultSeedUsers = []SeedUser{
	{Name: "Alice", Email: "alice@example.com", Role: domain.RoleAdmin},
	{Name: "Bob", Email: "bob@example.com", Role: domain.RoleMember},
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	UserIDs     map[string]string // email -> id
	BulletinIDs []string
}

// Seed inserts the demo users, all sharing passwordHash, and five sample
// bulletins: three official by the first admin and two member posts by the
// first member.
func Seed(ctx context.Context, db *mongo.Database, passwordHash string) (*SeedResult, error) {
	users := NewUserRepository(db)
	bulletins := NewBulletinRepository(db)
	now := time.Now().UTC()

	res := &SeedResult{UserIDs: make(map[string]string, len(DefaultSeedUsers))}
	var adminID, memberID string
	for _, su := range DefaultSeedUsers {
		id, err := users.Create(ctx, &domain.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: passwordHash,
			Role:         su.Role,
			CreatedAt:    now,
		})
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", su.Email, err)
		}
		res.UserIDs[su.Email] = id
		switch {
		case su.Role == domain.RoleAdmin && adminID == "":
			adminID = id
		case su.Role == domain.RoleMember && memberID == "":
			memberID = id
		}
	}

	posts := []struct {
		typ     domain.BulletinType
		creator string
	}{
		{domain.BulletinOfficial, adminID},
		{domain.BulletinMember, memberID},
		{domain.BulletinOfficial, adminID},
		{domain.BulletinOfficial, adminID},
		{domain.BulletinMember, memberID},
	}
	for i, p := range posts {
		id, err := bulletins.Create(ctx, &domain.Bulletin{
			Title:     fmt.Sprintf("Post %d", i+1),
			Content:   "This is an example post",
			Type:      p.typ,
			CreatedBy: p.creator,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			return nil, fmt.Errorf("seed bulletin %d: %w", i+1, err)
		}
		res.BulletinIDs = append(res.BulletinIDs, id)
	}
	return res, nil
}
