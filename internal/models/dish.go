package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionalInfo is the per-serving nutrition of a catalogue dish
type NutritionalInfo struct {
	Calories int `bson:"calories" json:"calories"`
	Protein  int `bson:"protein" json:"protein"`
	Carbs    int `bson:"carbs" json:"carbs"`
	Fat      int `bson:"fat" json:"fat"`
	Fiber    int `bson:"fiber" json:"fiber"`
}

// Dish is a curated recipe in the dishes collection
type Dish struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	IsVegan         bool               `bson:"isVegan" json:"isVegan"`
	Ingredients     []Ingredient       `bson:"ingredients" json:"ingredients"`
	Instructions    []string           `bson:"instructions" json:"instructions"`
	PrepTime        int                `bson:"prepTime" json:"prepTime"`
	CookTime        int                `bson:"cookTime" json:"cookTime"`
	Servings        int                `bson:"servings" json:"servings"`
	Difficulty      Difficulty         `bson:"difficulty" json:"difficulty"`
	Cuisine         string             `bson:"cuisine" json:"cuisine"`
	Tags            []string           `bson:"tags" json:"tags"`
	MealType        MealType           `bson:"mealType,omitempty" json:"mealType,omitempty"`
	NutritionalInfo NutritionalInfo    `bson:"nutritionalInfo" json:"nutritionalInfo"`
}

// ToRecipe converts a catalogue dish into a meal slot value. The dish id is kept
// so a later swap can exclude it.
func (d *Dish) ToRecipe(meal MealType) *Recipe {
	servings := d.Servings
	if servings < 1 {
		servings = 1
	}
	return &Recipe{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		PrepTime:     d.PrepTime,
		CookTime:     d.CookTime,
		Servings:     servings,
		Difficulty:   NormalizeDifficulty(string(d.Difficulty)),
		Calories:     d.NutritionalInfo.Calories,
		Protein:      d.NutritionalInfo.Protein,
		Carbs:        d.NutritionalInfo.Carbs,
		Fat:          d.NutritionalInfo.Fat,
		Fiber:        d.NutritionalInfo.Fiber,
		Ingredients:  append([]Ingredient(nil), d.Ingredients...),
		Instructions: append([]string(nil), d.Instructions...),
		Tags:         append([]string(nil), d.Tags...),
		Cuisine:      d.Cuisine,
		IsVegan:      true,
		MealType:     meal,
		Source:       SourceDatabase,
	}
}
