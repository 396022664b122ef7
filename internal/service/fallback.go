package service

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/vegandiet/backend/internal/models"
)

var fallbackCalories = map[models.MealType]int{
	models.Breakfast: 350,
	models.Lunch:     500,
	models.Dinner:    600,
}

// FallbackRecipe returns the fixed template recipe for a meal type
func FallbackRecipe(meal models.MealType) *models.Recipe {
	calories, ok := fallbackCalories[meal]
	if !ok {
		calories = DefaultCalories
	}
	return &models.Recipe{
		ID:          primitive.NewObjectID(),
		Name:        "Vegan " + meal.Title(),
		Description: "A simple, nutritious vegan " + string(meal),
		PrepTime:    DefaultPrepTime,
		CookTime:    DefaultCookTime,
		Servings:    DefaultServings,
		Difficulty:  models.DifficultyEasy,
		Calories:    calories,
		Protein:     DefaultProtein,
		Carbs:       DefaultCarbs,
		Fat:         DefaultFat,
		Fiber:       DefaultFiber,
		Ingredients: []models.Ingredient{
			{Name: "Mixed vegetables", Quantity: "2 cups", Category: "Produce"},
			{Name: "Whole grains", Quantity: "1 cup", Category: "Grains & Pasta"},
			{Name: "Plant protein", Quantity: "1/2 cup", Category: "Proteins"},
		},
		Instructions: []string{
			"Prepare ingredients",
			"Cook according to preference",
			"Season and serve",
		},
		Tags:     []string{"vegan", "healthy"},
		Cuisine:  DefaultCuisine,
		IsVegan:  true,
		MealType: meal,
		Source:   models.SourceFallback,
	}
}
