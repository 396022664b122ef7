package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name     string `bson:"name" json:"name"`
	Quantity string `bson:"quantity" json:"quantity"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
}

// Recipe is the content of a single meal slot
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	PrepTime     int                `bson:"prepTime" json:"prepTime"`
	CookTime     int                `bson:"cookTime" json:"cookTime"`
	Servings     int                `bson:"servings" json:"servings"`
	Difficulty   Difficulty         `bson:"difficulty" json:"difficulty"`
	Calories     int                `bson:"calories" json:"calories"`
	Protein      int                `bson:"protein" json:"protein"`
	Carbs        int                `bson:"carbs" json:"carbs"`
	Fat          int                `bson:"fat" json:"fat"`
	Fiber        int                `bson:"fiber" json:"fiber"`
	Ingredients  []Ingredient       `bson:"ingredients" json:"ingredients"`
	Instructions []string           `bson:"instructions" json:"instructions"`
	Tags         []string           `bson:"tags" json:"tags"`
	Cuisine      string             `bson:"cuisine" json:"cuisine"`
	IsVegan      bool               `bson:"isVegan" json:"isVegan"`
	MealType     MealType           `bson:"mealType" json:"mealType"`
	Source       RecipeSource       `bson:"source" json:"source"`
}

// IsFallback reports whether the recipe came from the static template table
func (r *Recipe) IsFallback() bool {
	return r != nil && r.Source == SourceFallback
}
