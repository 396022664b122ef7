package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/models"
)

// ShoppingItem is one merged ingredient line
type ShoppingItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

type ShoppingList struct {
	Items      []ShoppingItem            `json:"shoppingList"`
	ByCategory map[string][]ShoppingItem `json:"byCategory"`
	// ByStore is empty unless the profile has a location
	ByStore    []StoreStock `json:"byStore"`
	TotalItems int          `json:"totalItems"`
}

// Checked in order; the first keyword hit wins
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Produce", []string{"lettuce", "tomato", "onion", "garlic", "pepper", "carrot", "celery", "spinach", "kale", "broccoli", "cauliflower", "cucumber", "zucchini", "mushroom", "avocado", "potato", "sweet potato", "apple", "banana", "berry", "lemon", "lime", "orange", "ginger", "herb", "basil", "cilantro", "parsley", "vegetable"}},
	{"Grains & Pasta", []string{"rice", "pasta", "quinoa", "oats", "bread", "flour", "couscous", "bulgur", "barley", "noodle", "grain"}},
	{"Proteins", []string{"tofu", "tempeh", "seitan", "beans", "lentils", "chickpeas", "edamame", "peas", "protein"}},
	{"Dairy Alternatives", []string{"milk", "cheese", "yogurt", "cream", "butter"}},
	{"Pantry Staples", []string{"oil", "vinegar", "sauce", "paste", "stock", "broth", "salt", "spice", "sugar", "syrup", "tahini"}},
	{"Nuts & Seeds", []string{"nuts", "almonds", "walnuts", "cashews", "pecans", "seeds", "chia", "flax", "sesame", "sunflower", "pumpkin"}},
	{"Canned & Jarred", []string{"canned", "jarred", "pickled", "olives", "capers"}},
	{"Frozen", []string{"frozen"}},
	{"Baking", []string{"baking powder", "baking soda", "yeast", "vanilla", "cocoa", "chocolate"}},
	{"Condiments", []string{"ketchup", "mustard", "mayo", "hot sauce", "soy sauce", "tamari", "miso"}},
}

// CategorizeIngredient maps an ingredient name to a shopping category
func CategorizeIngredient(name string) string {
	n := strings.ToLower(name)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(n, kw) {
				return c.category
			}
		}
	}
	return "Other"
}

// BuildShoppingList merges the ingredients of every filled slot, Monday to
// Sunday and breakfast to dinner. Names are matched case-insensitively; the
// first spelling is kept and later quantities are appended with " + ".
func BuildShoppingList(menu *models.WeeklyMenu) []ShoppingItem {
	var items []ShoppingItem
	index := map[string]int{}
	if menu == nil {
		return items
	}
	for _, day := range models.Days {
		for _, meal := range models.MealTypes {
			recipe := menu.Menu.Get(day, meal)
			if recipe == nil {
				continue
			}
			for _, ing := range recipe.Ingredients {
				key := strings.ToLower(strings.TrimSpace(ing.Name))
				if key == "" {
					continue
				}
				if i, ok := index[key]; ok {
					items[i].Quantity += " + " + ing.Quantity
					continue
				}
				category := ing.Category
				if category == "" {
					category = CategorizeIngredient(ing.Name)
				}
				index[key] = len(items)
				items = append(items, ShoppingItem{Name: ing.Name, Quantity: ing.Quantity, Category: category})
			}
		}
	}
	return items
}

// GroupByCategory buckets items by category keeping their list order
func GroupByCategory(items []ShoppingItem) map[string][]ShoppingItem {
	groups := make(map[string][]ShoppingItem)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	return groups
}

// ShoppingList derives the shopping list of one of the user's menus
func (s *WeeklyMenuService) ShoppingList(ctx context.Context, userID, menuID string) (*ShoppingList, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	id, err := primitive.ObjectIDFromHex(menuID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed menu id", ErrInvalidInput)
	}
	menu, err := s.menus.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	items := BuildShoppingList(menu)
	if items == nil {
		items = []ShoppingItem{}
	}
	return &ShoppingList{
		Items:      items,
		ByCategory: GroupByCategory(items),
		ByStore:    s.nearbyStock(ctx, userID, items),
		TotalItems: len(items),
	}, nil
}

// nearbyStock groups items by the stores around the user's saved location.
// Store lookups are best effort: any failure leaves the grouping empty.
func (s *WeeklyMenuService) nearbyStock(ctx context.Context, userID string, items []ShoppingItem) []StoreStock {
	if s.stores == nil || len(items) == 0 {
		return []StoreStock{}
	}
	profile, err := s.profiles.FindByUID(ctx, userID)
	if err != nil {
		s.logger.Debug("no profile for store grouping", zap.String("user_id", userID), zap.Error(err))
		return []StoreStock{}
	}
	loc := profile.Profile.Personal.Location
	if loc == nil {
		return []StoreStock{}
	}
	lat, lng := loc.Coordinates[1], loc.Coordinates[0]
	stores, err := s.stores.Nearby(ctx, lat, lng, shoppingStoreRadius, shoppingStoreLimit)
	if err != nil {
		s.logger.Warn("store lookup failed", zap.String("user_id", userID), zap.Error(err))
		return []StoreStock{}
	}
	return storesByStock(stores, lat, lng, items)
}
