package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/vegandiet/backend/internal/models"
)

const (
	// shopping lists look for stores within 10 km of the user
	shoppingStoreRadius = 10000
	shoppingStoreLimit  = 10

	defaultRecommendRadius = 10000
	maxRecommendations     = 20

	earthRadiusMeters = 6371e3
)

// Keywords in a store's name or type that mark a full-service grocery
var fullServiceKeywords = []string{"supermarket", "grocery", "whole foods", "trader joe"}

// Expected share of vegan ingredients a store type carries, used when no dish
// is given to match against
var typeCoverage = map[string]int{
	"organic-store":   95,
	"specialty-store": 90,
	"farmers-market":  60,
}

const defaultTypeCoverage = 70

// StoreStock is a nearby store and the shopping items it likely carries
type StoreStock struct {
	Store       models.Store   `json:"store"`
	Distance    float64        `json:"distance"`
	Ingredients []ShoppingItem `json:"ingredients"`
}

// StoreRecommendation ranks a nearby store for buying a dish
type StoreRecommendation struct {
	Store              models.Store `json:"store"`
	Distance           float64      `json:"distance"`
	CoveragePercentage int          `json:"coveragePercentage"`
	HasVeganSection    bool         `json:"hasVeganSection"`
}

// DistanceMeters is the great-circle distance between two points
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// StockedIngredients guesses which items a store carries from its name and
// type. Full-service groceries carry everything; specialty shops only carry
// their categories.
func StockedIngredients(store models.Store, items []ShoppingItem) []ShoppingItem {
	label := strings.ToLower(store.Name + " " + store.Type)
	for _, kw := range fullServiceKeywords {
		if strings.Contains(label, kw) {
			return append([]ShoppingItem{}, items...)
		}
	}

	healthFood := strings.Contains(label, "health") || strings.Contains(label, "organic") || strings.Contains(label, "specialty")
	market := strings.Contains(label, "farmers") || strings.Contains(label, "market")
	asian := strings.Contains(label, "asian")

	out := []ShoppingItem{}
	for _, item := range items {
		name := strings.ToLower(item.Name)
		switch {
		case healthFood && (item.Category == "Produce" || item.Category == "Proteins" ||
			item.Category == "Grains & Pasta" || item.Category == "Nuts & Seeds"):
		case market && item.Category == "Produce":
		case asian && (strings.Contains(name, "tofu") || strings.Contains(name, "rice") || strings.Contains(name, "noodle")):
		default:
			continue
		}
		out = append(out, item)
	}
	return out
}

// storesByStock pairs each store with the items it likely carries, nearest
// store first
func storesByStock(stores []models.Store, lat, lng float64, items []ShoppingItem) []StoreStock {
	out := make([]StoreStock, 0, len(stores))
	for _, st := range stores {
		out = append(out, StoreStock{
			Store:       st,
			Distance:    DistanceMeters(lat, lng, st.Location.Coordinates[1], st.Location.Coordinates[0]),
			Ingredients: StockedIngredients(st, items),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// RecommendStores ranks stores near a point for buying a dish, best coverage
// first and nearest first within equal coverage. With a dish id the coverage
// is the share of the dish's ingredients the store likely carries; without
// one it is the store type's usual coverage.
func (s *CatalogService) RecommendStores(ctx context.Context, dishID string, lat, lng, radius float64) ([]StoreRecommendation, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	switch {
	case radius <= 0:
		radius = defaultRecommendRadius
	case radius > maxStoreRadius:
		radius = maxStoreRadius
	}

	var items []ShoppingItem
	if dishID != "" {
		id, err := primitive.ObjectIDFromHex(dishID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed dish id", ErrInvalidInput)
		}
		dish, err := s.dishes.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		items = dishShoppingItems(dish)
	}

	stores, err := s.stores.Nearby(ctx, lat, lng, radius, maxRecommendations)
	if err != nil {
		return nil, err
	}

	recs := make([]StoreRecommendation, 0, len(stores))
	for _, st := range stores {
		coverage, ok := typeCoverage[st.Type]
		if !ok {
			coverage = defaultTypeCoverage
		}
		if len(items) > 0 {
			coverage = len(StockedIngredients(st, items)) * 100 / len(items)
		}
		recs = append(recs, StoreRecommendation{
			Store:              st,
			Distance:           DistanceMeters(lat, lng, st.Location.Coordinates[1], st.Location.Coordinates[0]),
			CoveragePercentage: coverage,
			HasVeganSection:    st.Type == "organic-store" || st.Type == "specialty-store",
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CoveragePercentage != recs[j].CoveragePercentage {
			return recs[i].CoveragePercentage > recs[j].CoveragePercentage
		}
		return recs[i].Distance < recs[j].Distance
	})
	return recs, nil
}

func dishShoppingItems(dish *models.Dish) []ShoppingItem {
	items := make([]ShoppingItem, 0, len(dish.Ingredients))
	for _, ing := range dish.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		category := ing.Category
		if category == "" {
			category = CategorizeIngredient(ing.Name)
		}
		items = append(items, ShoppingItem{Name: ing.Name, Quantity: ing.Quantity, Category: category})
	}
	return items
}
