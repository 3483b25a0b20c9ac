package domain

import "errors"

// Error taxonomy shared by every service. Callers wrap these with
// fmt.Errorf("%w: ...") to add detail; the HTTP layer matches with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrForbidden        = errors.New("authentication required")
	ErrPermission       = errors.New("permission denied")
	ErrConflict         = errors.New("email already in use")
	ErrUserNotFound     = errors.New("user not found")
	ErrBulletinNotFound = errors.New("post does not exist")
)
