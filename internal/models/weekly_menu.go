package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekGrid maps day -> meal type -> recipe. An unfilled slot holds a nil recipe,
// never a missing key.
type WeekGrid map[Day]map[MealType]*Recipe

// NewWeekGrid returns a grid with all 21 slots present and empty
func NewWeekGrid() WeekGrid {
	grid := make(WeekGrid, len(Days))
	for _, d := range Days {
		meals := make(map[MealType]*Recipe, len(MealTypes))
		for _, m := range MealTypes {
			meals[m] = nil
		}
		grid[d] = meals
	}
	return grid
}

// Get returns the recipe in a slot, or nil
func (g WeekGrid) Get(day Day, meal MealType) *Recipe {
	if g == nil || g[day] == nil {
		return nil
	}
	return g[day][meal]
}

// Set fills a slot, creating the day entry if needed
func (g WeekGrid) Set(day Day, meal MealType, r *Recipe) {
	if g[day] == nil {
		g[day] = make(map[MealType]*Recipe, len(MealTypes))
	}
	g[day][meal] = r
}

// SlotPath is the document field path of a slot, e.g. "menu.monday.lunch"
func SlotPath(day Day, meal MealType) string {
	return fmt.Sprintf("menu.%s.%s", day, meal)
}

// WeeklyMenu is one user's menu for one week
type WeeklyMenu struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      string             `bson:"userId" json:"userId"`
	WeekStart   time.Time          `bson:"weekStart" json:"weekStart"`
	WeekEnd     time.Time          `bson:"weekEnd" json:"weekEnd"`
	Menu        WeekGrid           `bson:"menu" json:"menu"`
	GeneratedBy string             `bson:"generatedBy" json:"generatedBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const (
	GeneratedByAI     = "ai"
	GeneratedByManual = "manual"
)

// Totals holds summed nutrition values
type Totals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
}

// NutritionSummary is derived from a menu's filled slots
type NutritionSummary struct {
	Weekly       Totals `json:"weekly"`
	DailyAverage Totals `json:"dailyAverage"`
	FilledSlots  int    `json:"filledSlots"`
}

// NutritionSummary sums the nutrition of every filled slot
func (m *WeeklyMenu) NutritionSummary() NutritionSummary {
	var s NutritionSummary
	for _, d := range Days {
		for _, meal := range MealTypes {
			r := m.Menu.Get(d, meal)
			if r == nil {
				continue
			}
			s.FilledSlots++
			s.Weekly.Calories += r.Calories
			s.Weekly.Protein += r.Protein
			s.Weekly.Carbs += r.Carbs
			s.Weekly.Fat += r.Fat
			s.Weekly.Fiber += r.Fiber
		}
	}
	days := len(Days)
	s.DailyAverage = Totals{
		Calories: roundDiv(s.Weekly.Calories, days),
		Protein:  roundDiv(s.Weekly.Protein, days),
		Carbs:    roundDiv(s.Weekly.Carbs, days),
		Fat:      roundDiv(s.Weekly.Fat, days),
		Fiber:    roundDiv(s.Weekly.Fiber, days),
	}
	return s
}

func roundDiv(a, b int) int {
	return (a + b/2) / b
}
