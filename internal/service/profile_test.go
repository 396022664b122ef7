package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
	"github.com/pageza/vegandiet/backend/internal/types"
)

func TestProfileServiceUpdateAndGet(t *testing.T) {
	store := testhelpers.NewProfileStore()
	svc := service.NewProfileService(store, testhelpers.NewMenuStore(), nil, nil)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, "uid-new")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	req := &types.UpdateProfileRequest{Name: " Sam ", Email: "sam@example.com"}
	req.Profile.Personal.Timezone = "Europe/Lisbon"
	loc := models.NewGeoPoint(38.72, -9.14)
	loc.Type = ""
	req.Profile.Personal.Location = &loc
	req.Profile.Nutrition.CalorieTarget = 2100

	saved, err := svc.UpdateProfile(ctx, "uid-new", req)
	require.NoError(t, err)
	assert.Equal(t, "Sam", saved.Name)
	assert.True(t, saved.OnboardingCompleted)
	assert.Equal(t, "Point", saved.Profile.Personal.Location.Type)

	got, err := svc.GetProfile(ctx, "uid-new")
	require.NoError(t, err)
	assert.Equal(t, 2100, got.DailyCalorieTarget())
	assert.Equal(t, "Europe/Lisbon", got.Timezone())
}

func TestProfileServiceValidation(t *testing.T) {
	svc := service.NewProfileService(testhelpers.NewProfileStore(), testhelpers.NewMenuStore(), nil, nil)
	ctx := context.Background()

	bad := []func(r *types.UpdateProfileRequest){
		func(r *types.UpdateProfileRequest) { r.Profile.Personal.Timezone = "Mars/Olympus" },
		func(r *types.UpdateProfileRequest) { r.Profile.Personal.HouseholdSize = -1 },
		func(r *types.UpdateProfileRequest) { r.Profile.Cooking.TimeAvailable = -10 },
		func(r *types.UpdateProfileRequest) { r.Profile.Nutrition.CalorieTarget = -1 },
		func(r *types.UpdateProfileRequest) {
			p := models.NewGeoPoint(120, 0)
			r.Profile.Personal.Location = &p
		},
	}
	for i, mutate := range bad {
		req := &types.UpdateProfileRequest{}
		mutate(req)
		_, err := svc.UpdateProfile(ctx, "uid-1", req)
		assert.ErrorIs(t, err, service.ErrInvalidInput, "case %d", i)
	}

	_, err := svc.UpdateProfile(ctx, "", &types.UpdateProfileRequest{})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCatalogService(t *testing.T) {
	dishes := &testhelpers.DishStore{}
	for i := 0; i < 30; i++ {
		d := testhelpers.VeganDish("Dish")
		d.MealType = models.Dinner
		dishes.Dishes = append(dishes.Dishes, d)
	}
	stores := &testhelpers.StoreLocator{Stores: []models.Store{{Name: "Corner Shop"}}}
	svc := service.NewCatalogService(dishes, stores)
	ctx := context.Background()

	list, err := svc.ListDishes(ctx, service.DishFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 20)

	list, err = svc.ListDishes(ctx, service.DishFilter{MealType: "Breakfast"})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.ListDishes(ctx, service.DishFilter{MealType: "elevenses"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	found, err := svc.NearbyStores(ctx, 40.7, -74.0, 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, 5000.0, stores.LastRadius)
	assert.Equal(t, 40.7, stores.LastLat)

	_, err = svc.NearbyStores(ctx, 40.7, -74.0, 1e9)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, stores.LastRadius)

	_, err = svc.NearbyStores(ctx, 95, 0, 100)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestProfileServiceDeleteAccount(t *testing.T) {
	profiles := testhelpers.NewProfileStore(testhelpers.Profile("uid-1"), testhelpers.Profile("uid-2"))
	menus := testhelpers.NewMenuStore()
	menus.Put(&models.WeeklyMenu{UserID: "uid-1", Menu: models.NewWeekGrid()})
	menus.Put(&models.WeeklyMenu{UserID: "uid-1", Menu: models.NewWeekGrid()})
	kept := menus.Put(&models.WeeklyMenu{UserID: "uid-2", Menu: models.NewWeekGrid()})

	accounts := &testhelpers.MockAccountRemover{}
	accounts.On("DeleteUser", mock.Anything, "uid-1").Return(errors.New("firebase unavailable")).Once()
	accounts.On("DeleteUser", mock.Anything, "uid-1").Return(nil).Once()

	core, logs := observer.New(zap.WarnLevel)
	svc := service.NewProfileService(profiles, menus, accounts, zap.New(core))
	ctx := context.Background()

	// a sign-in account failure is logged, the data is still gone
	res, err := svc.DeleteAccount(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, &service.AccountDeletion{ProfileDeleted: true, MenusDeleted: 2}, res)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "uid-1", logs.All()[0].ContextMap()["user_id"])

	_, err = svc.GetProfile(ctx, "uid-1")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Equal(t, 1, menus.Count())
	assert.NotNil(t, menus.Get(kept))

	// deleting again succeeds with nothing removed
	res, err = svc.DeleteAccount(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, &service.AccountDeletion{}, res)
	accounts.AssertExpectations(t)

	_, err = svc.DeleteAccount(ctx, "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
