package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/models"
)

type SwapMealInput struct {
	UserID    string
	MenuID    string
	DayIndex  int
	MealIndex int
}

// SwapMeal replaces one slot of a menu with a random catalogue dish other than
// the one currently in the slot. No other slot is touched.
func (s *WeeklyMenuService) SwapMeal(ctx context.Context, in SwapMealInput) (*models.WeeklyMenu, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if in.DayIndex < 0 || in.DayIndex >= len(models.Days) {
		return nil, fmt.Errorf("%w: dayIndex must be between 0 and 6", ErrInvalidInput)
	}
	if in.MealIndex < 0 || in.MealIndex >= len(models.MealTypes) {
		return nil, fmt.Errorf("%w: mealIndex must be between 0 and 2", ErrInvalidInput)
	}
	menuID, err := primitive.ObjectIDFromHex(in.MenuID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed menu id", ErrInvalidInput)
	}

	menu, err := s.menus.FindByIDForUser(ctx, menuID, in.UserID)
	if err != nil {
		return nil, err
	}

	day, meal := models.Days[in.DayIndex], models.MealTypes[in.MealIndex]
	exclude := primitive.NilObjectID
	if current := menu.Menu.Get(day, meal); current != nil {
		exclude = current.ID
	}

	dish, err := s.dishes.RandomVeganExcept(ctx, exclude)
	if err != nil {
		return nil, err
	}
	recipe := dish.ToRecipe(meal)

	if err := s.menus.SetSlot(ctx, menu.ID, in.UserID, day, meal, recipe); err != nil {
		return nil, err
	}
	if menu.Menu == nil {
		menu.Menu = models.NewWeekGrid()
	}
	menu.Menu.Set(day, meal, recipe)
	menu.UpdatedAt = s.now()

	s.logger.Info("meal swapped",
		zap.String("user_id", in.UserID),
		zap.String("menu_id", menu.ID.Hex()),
		zap.String("day", string(day)),
		zap.String("meal_type", string(meal)),
		zap.String("dish_id", dish.ID.Hex()),
	)
	return menu, nil
}
