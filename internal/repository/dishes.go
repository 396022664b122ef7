package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
)

// DishRepository reads and seeds the curated dishes collection
type DishRepository struct {
	coll *mongo.Collection
}

var _ service.DishStore = (*DishRepository)(nil)

func NewDishRepository(db *mongo.Database) *DishRepository {
	return &DishRepository{coll: db.Collection(database.DishesCollection)}
}

// RandomVeganExcept samples one vegan dish whose id is not exclude
func (r *DishRepository) RandomVeganExcept(ctx context.Context, exclude primitive.ObjectID) (*models.Dish, error) {
	match := bson.M{"isVegan": true}
	if !exclude.IsZero() {
		match["_id"] = bson.M{"$ne": exclude}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample dishes: %w", err)
	}
	var dishes []models.Dish
	if err := cur.All(ctx, &dishes); err != nil {
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}
	if len(dishes) == 0 {
		return nil, service.ErrNoAlternativeDish
	}
	return &dishes[0], nil
}

func (r *DishRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dish, error) {
	var dish models.Dish
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dish)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, service.ErrDishNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dish: %w", err)
	}
	return &dish, nil
}

func (r *DishRepository) ListVegan(ctx context.Context, filter service.DishFilter) ([]models.Dish, error) {
	query := bson.M{"isVegan": true}
	if filter.Cuisine != "" {
		query["cuisine"] = filter.Cuisine
	}
	if filter.MealType != "" {
		query["mealType"] = filter.MealType
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	dishes := []models.Dish{}
	if err := cur.All(ctx, &dishes); err != nil {
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}
	return dishes, nil
}

// UpsertByName inserts or refreshes dishes matched by name and returns how
// many were newly created
func (r *DishRepository) UpsertByName(ctx context.Context, dishes []models.Dish) (int, error) {
	created := 0
	for i := range dishes {
		d := dishes[i]
		d.ID = primitive.NilObjectID
		doc, err := toSetDoc(d)
		if err != nil {
			return created, err
		}
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"name": d.Name},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return created, fmt.Errorf("failed to upsert dish %q: %w", d.Name, err)
		}
		if res.UpsertedCount > 0 {
			created++
		}
	}
	return created, nil
}

// toSetDoc marshals v to a document without its _id so it can be used in $set
func toSetDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	delete(doc, "_id")
	return doc, nil
}
