package service

import (
	"fmt"
	"strings"

	"github.com/pageza/vegandiet/backend/internal/models"
)

// Prompt is the system and user message pair sent to the completion API
type Prompt struct {
	System string
	User   string
}

const systemPrompt = "You are a professional vegan chef and nutritionist. Create delicious, nutritious vegan recipes with complete details."

// Share of the daily calorie target assigned to each meal
var mealCalorieShare = map[models.MealType]float64{
	models.Breakfast: 0.25,
	models.Lunch:     0.35,
	models.Dinner:    0.35,
}

var mealCharacteristics = map[models.MealType]string{
	models.Breakfast: "quick to prepare, energizing, and light",
	models.Lunch:     "balanced, satisfying, and portable",
	models.Dinner:    "hearty, comforting, and family-friendly",
}

const recipeSchema = `{
  "name": "Recipe Name",
  "description": "Brief appetizing description",
  "prepTime": 15,
  "cookTime": 20,
  "servings": 2,
  "difficulty": "Easy",
  "calories": 400,
  "protein": 15,
  "carbs": 50,
  "fat": 12,
  "fiber": 8,
  "ingredients": [
    {"name": "ingredient name", "quantity": "1 cup", "category": "vegetables"}
  ],
  "instructions": [
    "Step 1",
    "Step 2"
  ],
  "tags": ["vegan", "healthy"],
  "cuisine": "International"
}`

// MealCalorieTarget is the calorie budget for one meal of the given type
func MealCalorieTarget(profile *models.UserProfile, meal models.MealType) int {
	share, ok := mealCalorieShare[meal]
	if !ok {
		share = 1.0 / 3
	}
	return int(float64(profile.DailyCalorieTarget())*share + 0.5)
}

// BuildPrompt renders the prompt for one meal. A nil profile is valid and
// renders every field with its default phrase. The day does not change the text.
func BuildPrompt(profile *models.UserProfile, meal models.MealType, day models.Day) Prompt {
	var p models.ProfileDetails
	if profile != nil {
		p = profile.Profile
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a delicious, healthy vegan %s recipe personalized for this user.\n\n", meal)

	b.WriteString("User Profile:\n")
	line := func(label, value string) {
		fmt.Fprintf(&b, "- %s: %s\n", label, value)
	}
	line("Dietary restrictions", joinOr(p.Dietary.Restrictions, "None"))
	line("Allergies", joinOr(p.Dietary.Allergies, "None"))
	line("Intolerances", joinOr(p.Dietary.Intolerances, "None"))
	line("Favorite cuisines", joinOr(p.FoodPreferences.FavoriteCuisines, "Various"))
	line("Disliked ingredients", joinOr(p.FoodPreferences.DislikedIngredients, "None"))
	line("Preferred ingredients", joinOr(p.FoodPreferences.PreferredIngredients, "Not specified"))
	line("Spice tolerance", stringOr(p.FoodPreferences.SpiceTolerance, "Not specified"))
	line("Cooking skill", stringOr(p.Cooking.SkillLevel, "Intermediate"))
	if p.Cooking.TimeAvailable > 0 {
		line("Time available", fmt.Sprintf("%d minutes", p.Cooking.TimeAvailable))
	} else {
		line("Time available", "30-45 minutes")
	}
	line("Equipment", joinOr(p.Cooking.Equipment, "Not specified"))
	line("Health goals", stringOr(p.Nutrition.PrimaryGoal, "General wellness"))
	line("Calorie target per meal", fmt.Sprintf("about %d calories", MealCalorieTarget(profile, meal)))
	if p.Personal.HouseholdSize > 0 {
		line("Household size", fmt.Sprintf("%d", p.Personal.HouseholdSize))
	} else {
		line("Household size", "Not specified")
	}
	line("Budget", stringOr(p.Budget.Level, "Moderate"))

	if c, ok := mealCharacteristics[meal]; ok {
		fmt.Fprintf(&b, "\nThis %s should be %s.\n", meal, c)
	}

	b.WriteString(`
Requirements:
- Must be 100% vegan (no animal products)
- Include complete nutritional information
- Provide detailed ingredients with quantities
- Include step-by-step cooking instructions
- Consider user's preferences and restrictions
- Never use any listed allergen or disliked ingredient

Return ONLY a valid JSON object (no markdown, no code blocks) with this exact structure:
`)
	b.WriteString(recipeSchema)

	return Prompt{System: systemPrompt, User: b.String()}
}

func joinOr(values []string, def string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return def
	}
	return strings.Join(kept, ", ")
}

func stringOr(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
