package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/models"
)

const alternativeSystemPrompt = "You are a professional vegan chef and nutritionist. Create delicious, nutritious vegan alternatives to non-vegan dishes. Always respond with valid JSON."

// Fallback values used when no vegan alternative could be parsed
const (
	alternativePrepTime = 30
	alternativeCookTime = 30
	alternativeServings = 4
)

// DishDescription is the dish a vegan alternative is requested for
type DishDescription struct {
	Name        string
	Description string
	Cuisine     string
	Ingredients []models.Ingredient
}

// VeganAlternative is a generated replacement for a non-vegan dish
type VeganAlternative struct {
	Recipe       *models.Recipe
	OriginalDish string
	Fallback     bool
}

// AlternativeService asks the completion API for vegan versions of dishes
type AlternativeService struct {
	completer Completer
	logger    *zap.Logger
	metrics   *metrics.Collector
	deadline  time.Duration
}

func NewAlternativeService(completer Completer, logger *zap.Logger, m *metrics.Collector, deadline time.Duration) *AlternativeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deadline <= 0 {
		deadline = defaultGenerationDeadline
	}
	return &AlternativeService{completer: completer, logger: logger, metrics: m, deadline: deadline}
}

// BuildAlternativePrompt renders the prompt for a vegan version of dish
func BuildAlternativePrompt(dish DishDescription) Prompt {
	var b strings.Builder
	b.WriteString("I need a vegan alternative for the following dish:\n\n")
	fmt.Fprintf(&b, "Dish Name: %s\n", dish.Name)
	if dish.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", dish.Description)
	}
	if dish.Cuisine != "" {
		fmt.Fprintf(&b, "Cuisine: %s\n", dish.Cuisine)
	}
	if len(dish.Ingredients) > 0 {
		b.WriteString("\nOriginal Ingredients:\n")
		for _, ing := range dish.Ingredients {
			if ing.Quantity != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", ing.Name, ing.Quantity)
			} else {
				fmt.Fprintf(&b, "- %s\n", ing.Name)
			}
		}
	}

	b.WriteString(`
Please provide a complete vegan alternative with:
1. A creative vegan dish name
2. A detailed description
3. Complete list of vegan ingredients with quantities
4. Step-by-step cooking instructions
5. Preparation time and cooking time
6. Number of servings
7. Difficulty level (Easy/Medium/Hard)
8. Approximate nutrition per serving

Return ONLY a valid JSON object (no markdown, no code blocks) with this exact structure:
`)
	b.WriteString(recipeSchema)
	return Prompt{System: alternativeSystemPrompt, User: b.String()}
}

// FallbackAlternative is served when the completion fails or holds no JSON.
// Reply text that could not be parsed becomes the description and the only
// instruction.
func FallbackAlternative(name, reply string) *models.Recipe {
	reply = strings.TrimSpace(reply)
	description := "A vegan take on " + name
	instructions := []string{
		"Replace animal products with plant-based ingredients",
		"Cook as you would the original dish",
		"Season to taste and serve",
	}
	if reply != "" {
		description = reply
		instructions = []string{reply}
	}
	return &models.Recipe{
		ID:           primitive.NewObjectID(),
		Name:         "Vegan " + name,
		Description:  description,
		PrepTime:     alternativePrepTime,
		CookTime:     alternativeCookTime,
		Servings:     alternativeServings,
		Difficulty:   models.DifficultyMedium,
		Calories:     DefaultCalories,
		Protein:      DefaultProtein,
		Carbs:        DefaultCarbs,
		Fat:          DefaultFat,
		Fiber:        DefaultFiber,
		Ingredients:  []models.Ingredient{},
		Instructions: instructions,
		Tags:         []string{"vegan"},
		Cuisine:      DefaultCuisine,
		IsVegan:      true,
		Source:       models.SourceFallback,
	}
}

// Generate returns a vegan version of dish. It only fails on invalid input;
// completion and parse errors yield FallbackAlternative.
func (s *AlternativeService) Generate(ctx context.Context, dish DishDescription) (*VeganAlternative, error) {
	dish.Name = strings.TrimSpace(dish.Name)
	if dish.Name == "" {
		return nil, fmt.Errorf("%w: dish name is required", ErrInvalidInput)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	raw, err := s.completer.Complete(callCtx, BuildAlternativePrompt(dish))
	if err == nil {
		var recipe *models.Recipe
		recipe, err = parseRecipe(raw, "", recipeDefaults{
			name:        "Vegan " + dish.Name,
			description: "A vegan take on " + dish.Name,
			cuisine:     stringOr(dish.Cuisine, DefaultCuisine),
		})
		if err == nil {
			return &VeganAlternative{Recipe: recipe, OriginalDish: dish.Name}, nil
		}
	}

	kind := FailureKindOf(err)
	s.logger.Warn("vegan alternative fell back to template",
		zap.String("dish", dish.Name),
		zap.String("failure_kind", string(kind)),
		zap.Error(err),
	)
	s.metrics.MealFallback("alternative", string(kind))

	// keep the reply text only when the model answered in prose
	if kind != FailureMalformed {
		raw = ""
	}
	return &VeganAlternative{
		Recipe:       FallbackAlternative(dish.Name, raw),
		OriginalDish: dish.Name,
		Fallback:     true,
	}, nil
}
