package models

import (
	"fmt"
	"strings"
)

// Day is a day of the week as stored in a weekly menu
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists the days of a weekly menu in order, Monday first
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay parses a day name case-insensitively
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Days {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// MealType identifies a meal within a day
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes lists the meal types of a day in order
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// ParseMealType parses a meal type case-insensitively
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MealTypes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown meal type %q", s)
}

// Title returns the meal type with an upper-case first letter
func (m MealType) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Difficulty is the normalized recipe difficulty
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty maps free-form difficulty text onto the stored enum.
// Unknown values become easy.
func NormalizeDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyMedium, "intermediate", "moderate":
		return DifficultyMedium
	case DifficultyHard, "advanced", "difficult":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// RecipeSource records where a recipe's content came from
type RecipeSource string

const (
	SourceAI       RecipeSource = "ai"
	SourceFallback RecipeSource = "fallback"
	SourceDatabase RecipeSource = "database"
)
