package types

import "github.com/pageza/vegandiet/backend/internal/models"

// Owner carries the user id a request claims to act for. Older clients send
// it as firebaseUid.
type Owner struct {
	UserID      string `json:"userId" form:"userId"`
	FirebaseUID string `json:"firebaseUid" form:"firebaseUid"`
}

// OwnerID returns userId, or firebaseUid when userId is empty
func (o Owner) OwnerID() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.FirebaseUID
}

// GenerateMealRequest represents the request body for generating one meal slot
type GenerateMealRequest struct {
	Owner
	Day      string `json:"day" binding:"required"`
	MealType string `json:"mealType" binding:"required"`
	MenuID   string `json:"menuId"`
}

// GenerateWeekRequest represents the request body for generating a full week
type GenerateWeekRequest struct {
	Owner
}

// SwapMealRequest represents the request body for swapping one slot with a catalogue dish
type SwapMealRequest struct {
	Owner
	MenuID    string `json:"menuId" binding:"required"`
	DayIndex  *int   `json:"dayIndex" binding:"required,min=0,max=6"`
	MealIndex *int   `json:"mealIndex" binding:"required,min=0,max=2"`
}

// ShoppingListRequest represents the request body for deriving a shopping list
type ShoppingListRequest struct {
	Owner
	MenuID string `json:"menuId" binding:"required"`
}

// UpdateProfileRequest represents the request body for saving onboarding answers
type UpdateProfileRequest struct {
	Name                string                `json:"name" binding:"max=200"`
	Email               string                `json:"email" binding:"omitempty,email"`
	OnboardingCompleted *bool                 `json:"onboardingCompleted"`
	Profile             models.ProfileDetails `json:"profile"`
}

// VeganAlternativeRequest represents the request body for a vegan version of a dish
type VeganAlternativeRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description string              `json:"description" binding:"max=2000"`
	Cuisine     string              `json:"cuisine" binding:"max=100"`
	Ingredients []models.Ingredient `json:"ingredients" binding:"max=100"`
}

// StoreRecommendationsRequest represents the request body for ranking stores for a dish
type StoreRecommendationsRequest struct {
	DishID      string   `json:"dishId"`
	Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	MaxDistance float64  `json:"maxDistance" binding:"omitempty,min=1"`
}

// DishQuery represents the query string of the dish listing
type DishQuery struct {
	Cuisine  string `form:"cuisine"`
	MealType string `form:"mealType"`
	Limit    int64  `form:"limit" binding:"omitempty,min=1,max=100"`
}

// NearbyStoresQuery represents the query string of the store search
type NearbyStoresQuery struct {
	Lat    *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng    *float64 `form:"lng" binding:"required,min=-180,max=180"`
	Radius float64  `form:"radius" binding:"omitempty,min=1"`
}
