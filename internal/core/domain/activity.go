package domain

import "time"

// ActivityAction names a mutation recorded in the bulletin audit trail.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "created"
	ActivityEdited  ActivityAction = "edited"
	ActivityDeleted ActivityAction = "deleted"
)

// ActivityEvent records a single mutation of a bulletin.
type ActivityEvent struct {
	BulletinID string
	Action     ActivityAction
	ActorID    string
	Type       BulletinType
	OccurredAt time.Time
}
