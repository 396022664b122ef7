package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexes = map[string][]mongo.IndexModel{
	UsersCollection: {
		{
			Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("firebaseUid_unique"),
		},
	},
	WeeklyMenusCollection: {
		{
			// one menu per user and week; single-slot upserts rely on it
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStart", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("userId_weekStart_unique"),
		},
	},
	DishesCollection: {
		{
			Keys:    bson.D{{Key: "isVegan", Value: 1}, {Key: "cuisine", Value: 1}},
			Options: options.Index().SetName("isVegan_cuisine"),
		},
	},
	StoresCollection: {
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
	},
}

// EnsureIndexes creates the indexes every collection needs. Creating an
// existing index with the same definition is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
