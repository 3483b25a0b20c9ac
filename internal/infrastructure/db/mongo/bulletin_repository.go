package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

const collectionBulletins = "bulletins"

type BulletinRepository struct {
	col *mongo.Collection
}

func NewBulletinRepository(db *mongo.Database) *BulletinRepository {
	return &BulletinRepository{col: db.Collection(collectionBulletins)}
}

type mongoBulletin struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Title     string              `bson:"title"`
	Content   string              `bson:"content"`
	Type      string              `bson:"type"`
	CreatedBy primitive.ObjectID  `bson:"created_by"`
	CreatedAt time.Time           `bson:"created_at"`
	EditedAt  *time.Time          `bson:"edited_at,omitempty"`
	EditedBy  *primitive.ObjectID `bson:"edited_by,omitempty"`
}

func (mb *mongoBulletin) toDomain() *domain.Bulletin {
	b := &domain.Bulletin{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Content:   mb.Content,
		Type:      domain.BulletinType(mb.Type),
		CreatedBy: mb.CreatedBy.Hex(),
		CreatedAt: mb.CreatedAt.UTC(),
	}
	if mb.EditedAt != nil {
		t := mb.EditedAt.UTC()
		b.EditedAt = &t
	}
	if mb.EditedBy != nil {
		b.EditedBy = mb.EditedBy.Hex()
	}
	return b
}

// Create inserts a new bulletin document.
func (r *BulletinRepository) Create(ctx context.Context, b *domain.Bulletin) (string, error) {
	creator, err := primitive.ObjectIDFromHex(b.CreatedBy)
	if err != nil {
		return "", fmt.Errorf("insert bulletin: invalid creator id %q", b.CreatedBy)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoBulletin{
		Title:     b.Title,
		Content:   b.Content,
		Type:      string(b.Type),
		CreatedBy: creator,
		CreatedAt: b.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("insert bulletin: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert bulletin: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID retrieves a bulletin. Malformed ids are reported as not found.
func (r *BulletinRepository) FindByID(ctx context.Context, id string) (*domain.Bulletin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBulletinNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBulletin
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBulletinNotFound
		}
		return nil, fmt.Errorf("find bulletin: %w", err)
	}
	return mb.toDomain(), nil
}

// ListByType returns up to limit bulletins of type t, newest first.
func (r *BulletinRepository) ListByType(ctx context.Context, t domain.BulletinType, limit int) ([]*domain.Bulletin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"type": string(t)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bulletins: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBulletin
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bulletins: %w", err)
	}

	out := make([]*domain.Bulletin, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update overwrites the mutable fields. created_by is left untouched.
func (r *BulletinRepository) Update(ctx context.Context, id string, upd ports.BulletinUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBulletinNotFound
	}

	set := bson.M{
		"title":     upd.Title,
		"content":   upd.Content,
		"type":      string(upd.Type),
		"edited_at": upd.EditedAt.UTC(),
	}
	if editor, err := primitive.ObjectIDFromHex(upd.EditedBy); err == nil {
		set["edited_by"] = editor
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update bulletin: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBulletinNotFound
	}
	return nil
}

// Delete physically removes the bulletin.
func (r *BulletinRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBulletinNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bulletin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBulletinNotFound
	}
	return nil
}
