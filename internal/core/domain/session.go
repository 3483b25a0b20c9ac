package domain

import "time"

// Session is the decoded content of a valid bearer token.
type Session struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
