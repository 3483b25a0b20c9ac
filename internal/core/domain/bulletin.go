package domain

import "time"

// BulletinType is the visibility class of a bulletin.
type BulletinType string

const (
	BulletinOfficial BulletinType = "official"
	BulletinMember   BulletinType = "member"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 5000
)

// Valid reports whether t is one of the known visibility classes.
func (t BulletinType) Valid() bool {
	return t == BulletinOfficial || t == BulletinMember
}

// Public reports whether bulletins of this type are readable without a token.
func (t BulletinType) Public() bool {
	return t == BulletinOfficial
}

// Bulletin is a titled text post.
type Bulletin struct {
	ID        string
	Title     string
	Content   string
	Type      BulletinType
	CreatedBy string
	CreatedAt time.Time
	EditedAt  *time.Time
	EditedBy  string
}

// CanPublish reports whether a user with the given role may create or
// re-classify a bulletin as t.
func CanPublish(role string, t BulletinType) bool {
	return t != BulletinOfficial || role == RoleAdmin
}

// CanModify reports whether the requester may edit or delete a bulletin
// created by createdBy. Admins may modify anything.
func CanModify(role, requesterID, createdBy string) bool {
	if role == RoleAdmin {
		return true
	}
	return requesterID != "" && requesterID == createdBy
}
