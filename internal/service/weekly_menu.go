package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/models"
)

const defaultGenerationDeadline = 10 * time.Second

type WeeklyMenuConfig struct {
	DefaultLocation    *time.Location
	GenerationDeadline time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

// WeeklyMenuService assembles, stores and post-processes weekly menus
type WeeklyMenuService struct {
	profiles  ProfileStore
	menus     MenuStore
	dishes    DishStore
	stores    StoreLocator
	generator *MealGenerator
	logger    *zap.Logger
	metrics   *metrics.Collector
	cfg       WeeklyMenuConfig
	now       func() time.Time
}

// NewWeeklyMenuService wires the planner. stores may be nil, in which case
// shopping lists carry no store grouping.
func NewWeeklyMenuService(profiles ProfileStore, menus MenuStore, dishes DishStore, stores StoreLocator, generator *MealGenerator, logger *zap.Logger, m *metrics.Collector, cfg WeeklyMenuConfig) *WeeklyMenuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}
	if cfg.GenerationDeadline <= 0 {
		cfg.GenerationDeadline = defaultGenerationDeadline
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &WeeklyMenuService{
		profiles:  profiles,
		menus:     menus,
		dishes:    dishes,
		stores:    stores,
		generator: generator,
		logger:    logger,
		metrics:   m,
		cfg:       cfg,
		now:       cfg.Now,
	}
}

type GenerateMealInput struct {
	UserID   string
	Day      string
	MealType string
	MenuID   string
}

type GenerateMealResult struct {
	Meal     *models.Recipe
	Day      models.Day
	MealType models.MealType
	MenuID   primitive.ObjectID
	Fallback bool
}

// GenerateMeal fills one slot. With a menu id the slot of that menu is
// replaced; without one the user's current-week menu is created or updated.
func (s *WeeklyMenuService) GenerateMeal(ctx context.Context, in GenerateMealInput) (*GenerateMealResult, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	day, err := models.ParseDay(in.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	meal, err := models.ParseMealType(in.MealType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var menuID primitive.ObjectID
	if in.MenuID != "" {
		menuID, err = primitive.ObjectIDFromHex(in.MenuID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed menu id", ErrInvalidInput)
		}
	}

	profile, err := s.profiles.FindByUID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationDeadline)
	recipe := s.generator.Generate(genCtx, in.UserID, profile, day, meal)
	cancel()
	s.metrics.MenuGenerated("meal")

	if menuID.IsZero() {
		start, end, err := s.currentWeek(ctx, in.UserID, profile)
		if err != nil {
			return nil, err
		}
		menuID, err = s.menus.UpsertSlot(ctx, in.UserID, start, end, day, meal, recipe)
		if err != nil {
			return nil, fmt.Errorf("failed to save meal: %w", err)
		}
	} else if err := s.menus.SetSlot(ctx, menuID, in.UserID, day, meal, recipe); err != nil {
		return nil, err
	}

	return &GenerateMealResult{
		Meal:     recipe,
		Day:      day,
		MealType: meal,
		MenuID:   menuID,
		Fallback: recipe.IsFallback(),
	}, nil
}

// GenerateWeek generates all 21 slots concurrently and replaces the user's
// current-week menu with the result. Slots whose completion fails or misses
// the generation deadline hold fallback recipes.
func (s *WeeklyMenuService) GenerateWeek(ctx context.Context, userID string) (*models.WeeklyMenu, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	profile, err := s.profiles.FindByUID(ctx, userID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationDeadline)
	defer cancel()

	var slots [7][3]*models.Recipe
	g, gctx := errgroup.WithContext(genCtx)
	for di, day := range models.Days {
		for mi, meal := range models.MealTypes {
			di, day, mi, meal := di, day, mi, meal
			g.Go(func() error {
				slots[di][mi] = s.generator.Generate(gctx, userID, profile, day, meal)
				return nil
			})
		}
	}
	_ = g.Wait()
	s.metrics.MenuGenerated("week")

	grid := models.NewWeekGrid()
	fallbacks := 0
	for di, day := range models.Days {
		for mi, meal := range models.MealTypes {
			grid.Set(day, meal, slots[di][mi])
			if slots[di][mi].IsFallback() {
				fallbacks++
			}
		}
	}

	start, end, err := s.currentWeek(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	menu, err := s.menus.ReplaceWeek(ctx, &models.WeeklyMenu{
		UserID:      userID,
		WeekStart:   start,
		WeekEnd:     end,
		Menu:        grid,
		GeneratedBy: models.GeneratedByAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save weekly menu: %w", err)
	}

	s.logger.Info("weekly menu generated",
		zap.String("user_id", userID),
		zap.String("menu_id", menu.ID.Hex()),
		zap.Int("fallback_slots", fallbacks),
	)
	return menu, nil
}

// CurrentMenu returns the user's menu for the current week
func (s *WeeklyMenuService) CurrentMenu(ctx context.Context, userID string) (*models.WeeklyMenu, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, err := s.profiles.FindByUID(ctx, userID); err != nil {
		return nil, err
	}
	return s.menus.FindCurrent(ctx, userID, s.now())
}

// currentWeek returns the bounds of the menu that already covers now, so a
// timezone change mid-week keeps writing to the same document. Without one it
// falls back to the profile's local week.
func (s *WeeklyMenuService) currentWeek(ctx context.Context, userID string, profile *models.UserProfile) (time.Time, time.Time, error) {
	existing, err := s.menus.FindCurrent(ctx, userID, s.now())
	switch {
	case err == nil:
		return existing.WeekStart, existing.WeekEnd, nil
	case errors.Is(err, ErrMenuNotFound):
		start, end := WeekBounds(s.now(), s.location(profile))
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("failed to load current menu: %w", err)
	}
}

func (s *WeeklyMenuService) location(profile *models.UserProfile) *time.Location {
	if tz := profile.Timezone(); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
		s.logger.Debug("ignoring unknown profile timezone", zap.String("timezone", tz))
	}
	return s.cfg.DefaultLocation
}
