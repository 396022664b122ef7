package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/config"
	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/repository"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/pkg/logger"
)

type testUser struct {
	uid, name, email string
	onboarded        bool
	details          models.ProfileDetails
}

func testUsers() []testUser {
	paris := models.NewGeoPoint(48.8566, 2.3522)

	var busy models.ProfileDetails
	busy.Personal = models.PersonalInfo{HouseholdSize: 1, Timezone: "Europe/Paris", Location: &paris}
	busy.Dietary.Allergies = []string{"peanuts"}
	busy.FoodPreferences.FavoriteCuisines = []string{"Thai", "Indian"}
	busy.Cooking = models.CookingInfo{SkillLevel: "Beginner", TimeAvailable: 20}
	busy.Nutrition = models.NutritionGoals{PrimaryGoal: "Weight loss", CalorieTarget: 1800}
	busy.Budget.Level = "Low"

	var family models.ProfileDetails
	family.Personal = models.PersonalInfo{HouseholdSize: 4, Timezone: "America/New_York"}
	family.Dietary.Intolerances = []string{"gluten"}
	family.FoodPreferences.DislikedIngredients = []string{"mushrooms"}
	family.FoodPreferences.SpiceTolerance = "Mild"
	family.Cooking = models.CookingInfo{SkillLevel: "Advanced", TimeAvailable: 60, Equipment: []string{"oven", "instant pot"}}
	family.Nutrition = models.NutritionGoals{PrimaryGoal: "Muscle gain", CalorieTarget: 2600}

	return []testUser{
		{uid: "dev-busy-student", name: "Busy Student", email: "student@example.com", onboarded: true, details: busy},
		{uid: "dev-family-cook", name: "Family Cook", email: "family@example.com", onboarded: true, details: family},
		{uid: "dev-new-user", name: "New User", email: "new@example.com"},
	}
}

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "lifetime of the printed dev tokens")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Environment == config.Production {
		log.Fatal("refusing to seed test users in production")
	}
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		zlog.Fatal("failed to ensure indexes", zap.Error(err))
	}

	profiles := repository.NewProfileRepository(db)
	var tokens *service.JWTVerifier
	if cfg.JWTSecret != "" {
		tokens = service.NewJWTVerifier(cfg.JWTSecret)
	}

	for _, u := range testUsers() {
		saved, err := profiles.Upsert(ctx, &models.UserProfile{
			FirebaseUID:         u.uid,
			Email:               u.email,
			Name:                u.name,
			OnboardingCompleted: u.onboarded,
			Profile:             u.details,
			UpdatedAt:           time.Now(),
		})
		if err != nil {
			zlog.Error("failed to seed user", zap.String("uid", u.uid), zap.Error(err))
			continue
		}
		zlog.Info("test user seeded", zap.String("uid", saved.FirebaseUID), zap.String("email", saved.Email))

		if tokens == nil {
			continue
		}
		token, err := tokens.GenerateToken(u.uid, u.email, *ttl)
		if err != nil {
			zlog.Error("failed to sign dev token", zap.String("uid", u.uid), zap.Error(err))
			continue
		}
		fmt.Printf("%s\tBearer %s\n", u.uid, token)
	}

	if tokens == nil {
		zlog.Warn("JWT_SECRET not set, no dev tokens printed")
	}
}
