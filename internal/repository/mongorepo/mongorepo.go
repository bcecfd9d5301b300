// Package mongorepo stores users, profiles and posts as MongoDB documents.
package mongorepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnector/internal/repository"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	postsCollection    = "posts"

	system = "mongodb"
)

// NewRepositories returns the document-backed stores for db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:    &userRepository{coll: db.Collection(usersCollection)},
		Profiles: &profileRepository{coll: db.Collection(profilesCollection)},
		Posts:    &postRepository{coll: db.Collection(postsCollection)},
	}
}

// EnsureIndexes creates the unique and ordering indexes the stores rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		usersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		profilesCollection: {
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		postsCollection: {
			Keys: bson.D{{Key: "date", Value: -1}},
		},
	}

	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}
