package domain

import "time"

// Role values persisted on a user. RoleGuest is never stored: it names the
// unauthenticated client mode, which only ever sees official bulletins.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleGuest  = "guest"
)

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          *int      `json:"age,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user carries the admin override.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
