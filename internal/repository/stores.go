package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
)

// StoreRepository queries grocery stores through the 2dsphere index
type StoreRepository struct {
	coll *mongo.Collection
}

var _ service.StoreLocator = (*StoreRepository)(nil)

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{coll: db.Collection(database.StoresCollection)}
}

// Nearby returns stores within maxDistanceMeters of (lat, lng), nearest first
func (r *StoreRepository) Nearby(ctx context.Context, lat, lng, maxDistanceMeters float64, limit int64) ([]models.Store, error) {
	query := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    models.NewGeoPoint(lat, lng),
				"$maxDistance": maxDistanceMeters,
			},
		},
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby stores: %w", err)
	}
	stores := []models.Store{}
	if err := cur.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}
	return stores, nil
}

// UpsertByName inserts or refreshes stores matched by name
func (r *StoreRepository) UpsertByName(ctx context.Context, stores []models.Store) (int, error) {
	created := 0
	for i := range stores {
		s := stores[i]
		s.ID = primitive.NilObjectID
		doc, err := toSetDoc(s)
		if err != nil {
			return created, err
		}
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"name": s.Name},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return created, fmt.Errorf("failed to upsert store %q: %w", s.Name, err)
		}
		if res.UpsertedCount > 0 {
			created++
		}
	}
	return created, nil
}
