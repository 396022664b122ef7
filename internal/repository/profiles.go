package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
)

// ProfileRepository stores user documents keyed by firebaseUid
type ProfileRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ service.ProfileStore = (*ProfileRepository)(nil)

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(database.UsersCollection), now: time.Now}
}

func (r *ProfileRepository) FindByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"firebaseUid": uid}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, service.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, uid string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"firebaseUid": uid})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Upsert writes the profile answers of profile.FirebaseUID, creating the
// document on first save. An empty email or name keeps the stored value.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	now := r.now()
	set := bson.M{
		"onboardingCompleted": profile.OnboardingCompleted,
		"profile":             profile.Profile,
		"updatedAt":           now,
	}
	if profile.Email != "" {
		set["email"] = profile.Email
	}
	if profile.Name != "" {
		set["name"] = profile.Name
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.UserProfile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"firebaseUid": profile.FirebaseUID}, update, opts).Decode(&saved)
	if mongo.IsDuplicateKeyError(err) {
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"firebaseUid": profile.FirebaseUID}, update, opts).Decode(&saved)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &saved, nil
}
