package testhelpers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
)

// ProfileStore is an in-memory service.ProfileStore
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*models.UserProfile
}

func NewProfileStore(profiles ...*models.UserProfile) *ProfileStore {
	s := &ProfileStore{profiles: map[string]*models.UserProfile{}}
	for _, p := range profiles {
		s.profiles[p.FirebaseUID] = p
	}
	return s
}

func (s *ProfileStore) FindByUID(_ context.Context, uid string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[uid]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *ProfileStore) Upsert(_ context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *profile
	if existing, ok := s.profiles[profile.FirebaseUID]; ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	} else {
		cp.ID = primitive.NewObjectID()
		cp.CreatedAt = profile.UpdatedAt
	}
	s.profiles[profile.FirebaseUID] = &cp
	out := cp
	return &out, nil
}

func (s *ProfileStore) Delete(_ context.Context, uid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.profiles[uid]
	delete(s.profiles, uid)
	return ok, nil
}

// MenuStore is an in-memory service.MenuStore keyed like the real collection:
// at most one menu per (userId, weekStart).
type MenuStore struct {
	mu    sync.Mutex
	menus map[primitive.ObjectID]*models.WeeklyMenu
}

func NewMenuStore() *MenuStore {
	return &MenuStore{menus: map[primitive.ObjectID]*models.WeeklyMenu{}}
}

// Put stores a menu as is and returns its id
func (s *MenuStore) Put(menu *models.WeeklyMenu) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	s.menus[menu.ID] = cloneMenu(menu)
	return menu.ID
}

// Count returns the number of stored menus
func (s *MenuStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.menus)
}

// Get returns a copy of a stored menu, or nil
func (s *MenuStore) Get(id primitive.ObjectID) *models.WeeklyMenu {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.menus[id]; ok {
		return cloneMenu(m)
	}
	return nil
}

func (s *MenuStore) findWeek(userID string, weekStart time.Time) *models.WeeklyMenu {
	for _, m := range s.menus {
		if m.UserID == userID && m.WeekStart.Equal(weekStart) {
			return m
		}
	}
	return nil
}

func (s *MenuStore) UpsertSlot(_ context.Context, userID string, weekStart, weekEnd time.Time, day models.Day, meal models.MealType, recipe *models.Recipe) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	m := s.findWeek(userID, weekStart)
	if m == nil {
		m = &models.WeeklyMenu{
			ID:          primitive.NewObjectID(),
			UserID:      userID,
			WeekStart:   weekStart,
			WeekEnd:     weekEnd,
			Menu:        models.NewWeekGrid(),
			GeneratedBy: models.GeneratedByAI,
			CreatedAt:   now,
		}
		s.menus[m.ID] = m
	}
	m.Menu.Set(day, meal, cloneRecipe(recipe))
	m.UpdatedAt = now
	return m.ID, nil
}

func (s *MenuStore) SetSlot(_ context.Context, menuID primitive.ObjectID, userID string, day models.Day, meal models.MealType, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[menuID]
	if !ok || m.UserID != userID {
		return service.ErrMenuNotFound
	}
	m.Menu.Set(day, meal, cloneRecipe(recipe))
	m.UpdatedAt = time.Now()
	return nil
}

func (s *MenuStore) ReplaceWeek(_ context.Context, menu *models.WeeklyMenu) (*models.WeeklyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	stored := cloneMenu(menu)
	stored.UpdatedAt = now
	if existing := s.findWeek(menu.UserID, menu.WeekStart); existing != nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = primitive.NewObjectID()
		stored.CreatedAt = now
	}
	s.menus[stored.ID] = stored
	return cloneMenu(stored), nil
}

func (s *MenuStore) FindByIDForUser(_ context.Context, menuID primitive.ObjectID, userID string) (*models.WeeklyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[menuID]
	if !ok || m.UserID != userID {
		return nil, service.ErrMenuNotFound
	}
	return cloneMenu(m), nil
}

func (s *MenuStore) FindCurrent(_ context.Context, userID string, at time.Time) (*models.WeeklyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *models.WeeklyMenu
	for _, m := range s.menus {
		if m.UserID != userID || m.WeekStart.After(at) || m.WeekEnd.Before(at) {
			continue
		}
		if found == nil || m.WeekStart.After(found.WeekStart) {
			found = m
		}
	}
	if found == nil {
		return nil, service.ErrMenuNotFound
	}
	return cloneMenu(found), nil
}

func (s *MenuStore) DeleteByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, m := range s.menus {
		if m.UserID == userID {
			delete(s.menus, id)
			n++
		}
	}
	return n, nil
}

func cloneMenu(m *models.WeeklyMenu) *models.WeeklyMenu {
	cp := *m
	cp.Menu = models.NewWeekGrid()
	for day, meals := range m.Menu {
		for meal, r := range meals {
			cp.Menu.Set(day, meal, cloneRecipe(r))
		}
	}
	return &cp
}

func cloneRecipe(r *models.Recipe) *models.Recipe {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Ingredients = append([]models.Ingredient(nil), r.Ingredients...)
	cp.Instructions = append([]string(nil), r.Instructions...)
	cp.Tags = append([]string(nil), r.Tags...)
	return &cp
}

// DishStore is an in-memory service.DishStore. RandomVeganExcept returns the
// first vegan dish that is not excluded so tests are deterministic.
type DishStore struct {
	Dishes []models.Dish
}

func (s *DishStore) RandomVeganExcept(_ context.Context, exclude primitive.ObjectID) (*models.Dish, error) {
	for i := range s.Dishes {
		if s.Dishes[i].IsVegan && s.Dishes[i].ID != exclude {
			d := s.Dishes[i]
			return &d, nil
		}
	}
	return nil, service.ErrNoAlternativeDish
}

func (s *DishStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Dish, error) {
	for i := range s.Dishes {
		if s.Dishes[i].ID == id {
			d := s.Dishes[i]
			return &d, nil
		}
	}
	return nil, service.ErrDishNotFound
}

func (s *DishStore) ListVegan(_ context.Context, filter service.DishFilter) ([]models.Dish, error) {
	out := []models.Dish{}
	for _, d := range s.Dishes {
		if !d.IsVegan {
			continue
		}
		if filter.Cuisine != "" && d.Cuisine != filter.Cuisine {
			continue
		}
		if filter.MealType != "" && d.MealType != filter.MealType {
			continue
		}
		out = append(out, d)
		if filter.Limit > 0 && int64(len(out)) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// StoreLocator returns its fixed stores, or Err, and records the last query
type StoreLocator struct {
	Stores []models.Store
	Err    error

	LastLat, LastLng, LastRadius float64
}

func (s *StoreLocator) Nearby(_ context.Context, lat, lng, radius float64, limit int64) ([]models.Store, error) {
	s.LastLat, s.LastLng, s.LastRadius = lat, lng, radius
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.Stores
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// VeganDish builds a catalogue dish with one ingredient
func VeganDish(name string, ingredients ...models.Ingredient) models.Dish {
	return models.Dish{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Description:     name + " from the catalogue",
		IsVegan:         true,
		Ingredients:     ingredients,
		Instructions:    []string{"Cook"},
		PrepTime:        10,
		CookTime:        15,
		Servings:        2,
		Difficulty:      models.DifficultyEasy,
		Cuisine:         "International",
		NutritionalInfo: models.NutritionalInfo{Calories: 450, Protein: 20, Carbs: 40, Fat: 10, Fiber: 9},
	}
}
