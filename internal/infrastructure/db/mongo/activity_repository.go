package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

const collectionActivity = "bulletin_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type mongoActivity struct {
	BulletinID string    `bson:"bulletin_id"`
	Action     string    `bson:"action"`
	ActorID    string    `bson:"actor_id"`
	Type       string    `bson:"type"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Insert appends an event to the bulletin_activity audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, mongoActivity{
		BulletinID: event.BulletinID,
		Action:     string(event.Action),
		ActorID:    event.ActorID,
		Type:       string(event.Type),
		OccurredAt: event.OccurredAt.UTC(),
		RecordedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the newest limit events.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoActivity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}

	out := make([]*domain.ActivityEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.ActivityEvent{
			BulletinID: d.BulletinID,
			Action:     domain.ActivityAction(d.Action),
			ActorID:    d.ActorID,
			Type:       domain.BulletinType(d.Type),
			OccurredAt: d.OccurredAt.UTC(),
		})
	}
	return out, nil
}
