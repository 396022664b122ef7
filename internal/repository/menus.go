package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
)

// MenuRepository stores weekly menus. The unique (userId, weekStart) index
// makes every upsert here race-free: two concurrent creators collide on the
// index and the loser retries as an update.
type MenuRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ service.MenuStore = (*MenuRepository)(nil)

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{coll: db.Collection(database.WeeklyMenusCollection), now: time.Now}
}

func weekFilter(userID string, weekStart time.Time) bson.M {
	return bson.M{"userId": userID, "weekStart": weekStart}
}

func (r *MenuRepository) UpsertSlot(ctx context.Context, userID string, weekStart, weekEnd time.Time, day models.Day, meal models.MealType, recipe *models.Recipe) (primitive.ObjectID, error) {
	now := r.now()
	target := models.SlotPath(day, meal)

	onInsert := bson.M{
		"weekEnd":     weekEnd,
		"generatedBy": models.GeneratedByAI,
		"createdAt":   now,
	}
	for _, d := range models.Days {
		for _, m := range models.MealTypes {
			if path := models.SlotPath(d, m); path != target {
				onInsert[path] = nil
			}
		}
	}
	update := bson.M{
		"$set":         bson.M{target: recipe, "updatedAt": now},
		"$setOnInsert": onInsert,
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.coll.FindOneAndUpdate(ctx, weekFilter(userID, weekStart), update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		err = r.coll.FindOneAndUpdate(ctx, weekFilter(userID, weekStart), update, opts).Decode(&doc)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to upsert menu slot: %w", err)
	}
	return doc.ID, nil
}

func (r *MenuRepository) SetSlot(ctx context.Context, menuID primitive.ObjectID, userID string, day models.Day, meal models.MealType, recipe *models.Recipe) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": menuID, "userId": userID},
		bson.M{"$set": bson.M{models.SlotPath(day, meal): recipe, "updatedAt": r.now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update menu slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return service.ErrMenuNotFound
	}
	return nil
}

// ReplaceWeek overwrites the whole grid of the (userId, weekStart) menu,
// creating it if needed. The document id and createdAt survive a replace.
func (r *MenuRepository) ReplaceWeek(ctx context.Context, menu *models.WeeklyMenu) (*models.WeeklyMenu, error) {
	now := r.now()
	grid := menu.Menu
	if grid == nil {
		grid = models.NewWeekGrid()
	}
	generatedBy := menu.GeneratedBy
	if generatedBy == "" {
		generatedBy = models.GeneratedByAI
	}
	update := bson.M{
		"$set": bson.M{
			"weekEnd":     menu.WeekEnd,
			"menu":        grid,
			"generatedBy": generatedBy,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.WeeklyMenu
	err := r.coll.FindOneAndUpdate(ctx, weekFilter(menu.UserID, menu.WeekStart), update, opts).Decode(&saved)
	if mongo.IsDuplicateKeyError(err) {
		err = r.coll.FindOneAndUpdate(ctx, weekFilter(menu.UserID, menu.WeekStart), update, opts).Decode(&saved)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save weekly menu: %w", err)
	}
	fillGrid(&saved)
	return &saved, nil
}

func (r *MenuRepository) FindByIDForUser(ctx context.Context, menuID primitive.ObjectID, userID string) (*models.WeeklyMenu, error) {
	return r.findOne(ctx, bson.M{"_id": menuID, "userId": userID})
}

func (r *MenuRepository) FindCurrent(ctx context.Context, userID string, at time.Time) (*models.WeeklyMenu, error) {
	filter := bson.M{
		"userId":    userID,
		"weekStart": bson.M{"$lte": at},
		"weekEnd":   bson.M{"$gte": at},
	}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "weekStart", Value: -1}}))
}

func (r *MenuRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete weekly menus: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MenuRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.WeeklyMenu, error) {
	var menu models.WeeklyMenu
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&menu)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, service.ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly menu: %w", err)
	}
	fillGrid(&menu)
	return &menu, nil
}

// fillGrid restores missing slot keys of documents written by older clients
func fillGrid(menu *models.WeeklyMenu) {
	if menu.Menu == nil {
		menu.Menu = models.NewWeekGrid()
		return
	}
	for _, d := range models.Days {
		for _, m := range models.MealTypes {
			if _, ok := menu.Menu[d][m]; !ok {
				menu.Menu.Set(d, m, nil)
			}
		}
	}
}
