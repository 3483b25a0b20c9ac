package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seniorlearn/bulletin-api/internal/core/domain"
)

// codeNamespaceExists is returned by create when the collection already exists.
const codeNamespaceExists = 48

// collectionSpec describes one managed collection: its $jsonSchema validator
// (nil for none) and the indexes it needs.
type collectionSpec struct {
	name      string
	validator bson.M
	indexes   []mongo.IndexModel
}

func collectionSpecs() []collectionSpec {
	return []collectionSpec{
		{
			name: collectionUsers,
			validator: bson.M{"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"name", "email", "password_hash", "role", "created_at"},
				"properties": bson.M{
					"name":          bson.M{"bsonType": "string", "minLength": 1},
					"email":         bson.M{"bsonType": "string", "minLength": 3},
					"age":           bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
					"password_hash": bson.M{"bsonType": "string"},
					"role":          bson.M{"enum": bson.A{domain.RoleAdmin, domain.RoleMember}},
					"created_at":    bson.M{"bsonType": "date"},
				},
			}},
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			name: collectionBulletins,
			validator: bson.M{"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"title", "content", "type", "created_by", "created_at"},
				"properties": bson.M{
					"title":      bson.M{"bsonType": "string", "minLength": 1, "maxLength": domain.MaxTitleLength},
					"content":    bson.M{"bsonType": "string", "minLength": 1, "maxLength": domain.MaxContentLength},
					"type":       bson.M{"enum": bson.A{string(domain.BulletinOfficial), string(domain.BulletinMember)}},
					"created_by": bson.M{"bsonType": "objectId"},
					"created_at": bson.M{"bsonType": "date"},
					"edited_at":  bson.M{"bsonType": "date"},
					"edited_by":  bson.M{"bsonType": "objectId"},
				},
			}},
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
				{Keys: bson.D{{Key: "created_by", Value: 1}}},
			},
		},
		{
			name: collectionActivity,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
				{Keys: bson.D{{Key: "bulletin_id", Value: 1}}},
			},
		},
	}
}

// EnsureSchema creates the managed collections with their validators, refreshes
// validators on collections that already exist, and creates indexes. It is
// idempotent and runs at every startup.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, spec := range collectionSpecs() {
		if err := ensureCollection(ctx, db, spec); err != nil {
			return err
		}
		if len(spec.indexes) == 0 {
			continue
		}
		if _, err := db.Collection(spec.name).Indexes().CreateMany(ctx, spec.indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.name, err)
		}
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, spec collectionSpec) error {
	opts := options.CreateCollection()
	if spec.validator != nil {
		opts.SetValidator(spec.validator)
	}

	err := db.CreateCollection(ctx, spec.name, opts)
	if err == nil {
		return nil
	}

	var ce mongo.CommandError
	if !errors.As(err, &ce) || ce.Code != codeNamespaceExists {
		return fmt.Errorf("create collection %s: %w", spec.name, err)
	}
	if spec.validator == nil {
		return nil
	}

	cmd := bson.D{{Key: "collMod", Value: spec.name}, {Key: "validator", Value: spec.validator}}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("update validator on %s: %w", spec.name, err)
	}
	return nil
}

// DropAll drops every collection in the database.
func DropAll(ctx context.Context, db *mongo.Database) ([]string, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return nil, fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return names, nil
}
