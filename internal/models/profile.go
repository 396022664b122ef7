package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a latitude and longitude
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// UserProfile is the users collection document
type UserProfile struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirebaseUID         string             `bson:"firebaseUid" json:"firebaseUid"`
	Email               string             `bson:"email" json:"email"`
	Name                string             `bson:"name" json:"name"`
	OnboardingCompleted bool               `bson:"onboardingCompleted" json:"onboardingCompleted"`
	Profile             ProfileDetails     `bson:"profile" json:"profile"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ProfileDetails struct {
	Personal        PersonalInfo    `bson:"personal" json:"personal"`
	Dietary         DietaryInfo     `bson:"dietary" json:"dietary"`
	FoodPreferences FoodPreferences `bson:"foodPreferences" json:"foodPreferences"`
	Cooking         CookingInfo     `bson:"cooking" json:"cooking"`
	Nutrition       NutritionGoals  `bson:"nutrition" json:"nutrition"`
	Budget          BudgetInfo      `bson:"budget" json:"budget"`
}

type PersonalInfo struct {
	HouseholdSize int       `bson:"householdSize,omitempty" json:"householdSize,omitempty"`
	Timezone      string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Location      *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
}

type DietaryInfo struct {
	Restrictions []string `bson:"restrictions,omitempty" json:"restrictions,omitempty"`
	Allergies    []string `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Intolerances []string `bson:"intolerances,omitempty" json:"intolerances,omitempty"`
}

type FoodPreferences struct {
	FavoriteCuisines     []string `bson:"favoriteCuisines,omitempty" json:"favoriteCuisines,omitempty"`
	DislikedIngredients  []string `bson:"dislikedIngredients,omitempty" json:"dislikedIngredients,omitempty"`
	PreferredIngredients []string `bson:"preferredIngredients,omitempty" json:"preferredIngredients,omitempty"`
	SpiceTolerance       string   `bson:"spiceTolerance,omitempty" json:"spiceTolerance,omitempty"`
}

type CookingInfo struct {
	SkillLevel    string   `bson:"skillLevel,omitempty" json:"skillLevel,omitempty"`
	TimeAvailable int      `bson:"timeAvailable,omitempty" json:"timeAvailable,omitempty"`
	Equipment     []string `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

type NutritionGoals struct {
	PrimaryGoal   string `bson:"primaryGoal,omitempty" json:"primaryGoal,omitempty"`
	CalorieTarget int    `bson:"calorieTarget,omitempty" json:"calorieTarget,omitempty"`
}

type BudgetInfo struct {
	Level string `bson:"level,omitempty" json:"level,omitempty"`
}

// DefaultDailyCalories is used when a profile has no calorie target
const DefaultDailyCalories = 2000

// DailyCalorieTarget returns the profile's daily target or the default
func (u *UserProfile) DailyCalorieTarget() int {
	if u == nil || u.Profile.Nutrition.CalorieTarget <= 0 {
		return DefaultDailyCalories
	}
	return u.Profile.Nutrition.CalorieTarget
}

// Timezone returns the profile timezone name, or "" when unset
func (u *UserProfile) Timezone() string {
	if u == nil {
		return ""
	}
	return u.Profile.Personal.Timezone
}
