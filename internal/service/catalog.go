package service

import (
	"context"
	"fmt"

	"github.com/pageza/vegandiet/backend/internal/models"
)

const (
	defaultDishLimit     = 20
	maxDishLimit         = 100
	defaultStoreRadius   = 5000
	maxStoreRadius       = 50000
	defaultNearbyResults = 20
)

// CatalogService serves the curated dishes and the store directory
type CatalogService struct {
	dishes DishStore
	stores StoreLocator
}

func NewCatalogService(dishes DishStore, stores StoreLocator) *CatalogService {
	return &CatalogService{dishes: dishes, stores: stores}
}

// ListDishes returns vegan dishes, optionally filtered
func (s *CatalogService) ListDishes(ctx context.Context, filter DishFilter) ([]models.Dish, error) {
	if filter.MealType != "" {
		meal, err := models.ParseMealType(string(filter.MealType))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.MealType = meal
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultDishLimit
	case filter.Limit > maxDishLimit:
		filter.Limit = maxDishLimit
	}
	return s.dishes.ListVegan(ctx, filter)
}

// NearbyStores returns stores within radius meters of a point, nearest first
func (s *CatalogService) NearbyStores(ctx context.Context, lat, lng, radius float64) ([]models.Store, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	switch {
	case radius <= 0:
		radius = defaultStoreRadius
	case radius > maxStoreRadius:
		radius = maxStoreRadius
	}
	return s.stores.Nearby(ctx, lat, lng, radius, defaultNearbyResults)
}
