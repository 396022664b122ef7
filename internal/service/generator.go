package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/models"
)

// MealGenerator produces the recipe for one slot. It never fails: any
// completion or parse error yields the fallback recipe, a warning log and a
// fallback metric.
type MealGenerator struct {
	completer Completer
	logger    *zap.Logger
	metrics   *metrics.Collector
}

func NewMealGenerator(completer Completer, logger *zap.Logger, m *metrics.Collector) *MealGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealGenerator{completer: completer, logger: logger, metrics: m}
}

// Generate runs prompt building, completion and parsing for one slot
func (g *MealGenerator) Generate(ctx context.Context, userID string, profile *models.UserProfile, day models.Day, meal models.MealType) *models.Recipe {
	prompt := BuildPrompt(profile, meal, day)

	raw, err := g.completer.Complete(ctx, prompt)
	if err == nil {
		var recipe *models.Recipe
		recipe, err = ParseRecipe(raw, meal)
		if err == nil {
			return recipe
		}
	}

	kind := FailureKindOf(err)
	g.logger.Warn("meal generation fell back to template",
		zap.String("user_id", userID),
		zap.String("day", string(day)),
		zap.String("meal_type", string(meal)),
		zap.String("failure_kind", string(kind)),
		zap.Error(err),
	)
	g.metrics.MealFallback(string(meal), string(kind))
	return FallbackRecipe(meal)
}
