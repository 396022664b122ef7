package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/vegandiet/backend/internal/models"
)

// ErrMalformedCompletion means the completion text held no usable JSON object
var ErrMalformedCompletion = errors.New("malformed completion")

// Defaults substituted for missing or unusable recipe fields
const (
	DefaultPrepTime   = 15
	DefaultCookTime   = 20
	DefaultServings   = 2
	DefaultCalories   = 400
	DefaultProtein    = 15
	DefaultCarbs      = 50
	DefaultFat        = 12
	DefaultFiber      = 8
	DefaultDifficulty = "Easy"
	DefaultCuisine    = "International"
)

// ParseRecipe turns completion text into a recipe for the given meal type.
// Missing or mistyped fields get fixed defaults; only text that holds no JSON
// object at all is an error.
func ParseRecipe(raw string, meal models.MealType) (*models.Recipe, error) {
	return parseRecipe(raw, meal, recipeDefaults{
		name:        "Vegan " + meal.Title(),
		description: "A delicious vegan " + string(meal),
		cuisine:     DefaultCuisine,
	})
}

// recipeDefaults are the text fields that depend on what was asked for
type recipeDefaults struct {
	name, description, cuisine string
}

func parseRecipe(raw string, meal models.MealType, defs recipeDefaults) (*models.Recipe, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	r := &models.Recipe{
		ID:           primitive.NewObjectID(),
		Name:         stringField(fields, "name", defs.name),
		Description:  stringField(fields, "description", defs.description),
		PrepTime:     intField(fields, "prepTime", DefaultPrepTime),
		CookTime:     intField(fields, "cookTime", DefaultCookTime),
		Servings:     intField(fields, "servings", DefaultServings),
		Difficulty:   models.NormalizeDifficulty(stringField(fields, "difficulty", DefaultDifficulty)),
		Calories:     intField(fields, "calories", DefaultCalories),
		Protein:      intField(fields, "protein", DefaultProtein),
		Carbs:        intField(fields, "carbs", DefaultCarbs),
		Fat:          intField(fields, "fat", DefaultFat),
		Fiber:        intField(fields, "fiber", DefaultFiber),
		Ingredients:  ingredientsField(fields["ingredients"]),
		Instructions: instructionsField(fields["instructions"]),
		Tags:         tagsField(fields["tags"]),
		Cuisine:      stringField(fields, "cuisine", defs.cuisine),
		IsVegan:      true,
		MealType:     meal,
		Source:       models.SourceAI,
	}
	if r.Servings < 1 {
		r.Servings = DefaultServings
	}
	return r, nil
}

func decodeObject(raw string) (map[string]any, error) {
	text := stripFences(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrMalformedCompletion)
	}

	fields, err := unmarshalObject(text)
	if err == nil {
		return fields, nil
	}

	// Models sometimes wrap the object in prose
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if fields, err2 := unmarshalObject(text[start : end+1]); err2 == nil {
			return fields, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
}

func unmarshalObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("not a JSON object")
	}
	return fields, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func stringField(fields map[string]any, key, def string) string {
	if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

// intField reads a non-negative integer from a JSON number or from the leading
// digits of a string such as "20 minutes". Fractional numbers truncate toward zero.
func intField(fields map[string]any, key string, def int) int {
	var (
		n  int
		ok bool
	)
	switch v := fields[key].(type) {
	case json.Number:
		n, ok = numberInt(v)
	case string:
		n, ok = leadingInt(v)
	default:
		return def
	}
	if !ok || n < 0 {
		return def
	}
	return n
}

func numberInt(v json.Number) (int, bool) {
	if i, err := v.Int64(); err == nil {
		return int(i), true
	}
	f, err := v.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func ingredientsField(v any) []models.Ingredient {
	items, ok := v.([]any)
	if !ok {
		return []models.Ingredient{}
	}
	out := make([]models.Ingredient, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if name := strings.TrimSpace(t); name != "" {
				out = append(out, models.Ingredient{Name: name})
			}
		case map[string]any:
			ing := models.Ingredient{
				Name:     scalarString(t["name"]),
				Quantity: scalarString(t["quantity"]),
				Category: scalarString(t["category"]),
			}
			if ing.Name != "" {
				out = append(out, ing)
			}
		}
	}
	return out
}

func instructionsField(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := scalarString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func tagsField(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{"vegan", "healthy"}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
