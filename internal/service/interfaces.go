package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/vegandiet/backend/internal/models"
)

// ProfileStore reads and writes user documents. FindByUID returns
// ErrUserNotFound when no document matches.
type ProfileStore interface {
	FindByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	// Delete removes the user document and reports whether one existed.
	Delete(ctx context.Context, uid string) (bool, error)
}

// MenuStore persists weekly menus. Lookups that match nothing return
// ErrMenuNotFound.
type MenuStore interface {
	// UpsertSlot sets one slot of the (userID, weekStart) menu, creating the
	// document with the remaining slots empty if it does not exist.
	UpsertSlot(ctx context.Context, userID string, weekStart, weekEnd time.Time, day models.Day, meal models.MealType, recipe *models.Recipe) (primitive.ObjectID, error)
	// SetSlot sets one slot of an existing menu owned by userID.
	SetSlot(ctx context.Context, menuID primitive.ObjectID, userID string, day models.Day, meal models.MealType, recipe *models.Recipe) error
	// ReplaceWeek writes a whole grid as the (userID, weekStart) menu.
	ReplaceWeek(ctx context.Context, menu *models.WeeklyMenu) (*models.WeeklyMenu, error)
	FindByIDForUser(ctx context.Context, menuID primitive.ObjectID, userID string) (*models.WeeklyMenu, error)
	// FindCurrent returns the menu whose week contains at. When weeks
	// overlap after a timezone change the latest weekStart wins.
	FindCurrent(ctx context.Context, userID string, at time.Time) (*models.WeeklyMenu, error)
	// DeleteByUser removes every menu of userID and returns how many went.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// DishStore reads the curated dishes catalogue. RandomVeganExcept returns
// ErrNoAlternativeDish when the catalogue has nothing else to offer and
// FindByID returns ErrDishNotFound for an unknown id.
type DishStore interface {
	RandomVeganExcept(ctx context.Context, exclude primitive.ObjectID) (*models.Dish, error)
	ListVegan(ctx context.Context, filter DishFilter) ([]models.Dish, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dish, error)
}

type DishFilter struct {
	Cuisine  string
	MealType models.MealType
	Limit    int64
}

// StoreLocator finds grocery stores near a point
type StoreLocator interface {
	Nearby(ctx context.Context, lat, lng float64, maxDistanceMeters float64, limit int64) ([]models.Store, error)
}

// AccountRemover deletes the sign-in account behind a uid
type AccountRemover interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Completer sends a prompt to a chat completion API and returns the reply text
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
