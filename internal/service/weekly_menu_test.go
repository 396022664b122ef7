package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

// Wednesday afternoon
var fixedNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *service.WeeklyMenuService
	profiles *testhelpers.ProfileStore
	menus    *testhelpers.MenuStore
	dishes   *testhelpers.DishStore
	stores   *testhelpers.StoreLocator
}

func newFixture(t *testing.T, c service.Completer, deadline time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		profiles: testhelpers.NewProfileStore(testhelpers.Profile("uid-1")),
		menus:    testhelpers.NewMenuStore(),
		dishes:   &testhelpers.DishStore{},
		stores:   &testhelpers.StoreLocator{},
	}
	f.svc = service.NewWeeklyMenuService(f.profiles, f.menus, f.dishes, f.stores,
		service.NewMealGenerator(c, nil, nil), nil, nil,
		service.WeeklyMenuConfig{
			DefaultLocation:    time.UTC,
			GenerationDeadline: deadline,
			Now:                func() time.Time { return fixedNow },
		})
	return f
}

func okCompleter() *testhelpers.StaticCompleter {
	return &testhelpers.StaticCompleter{Reply: testhelpers.RecipeJSON("Green Curry", 620)}
}

func TestWeekBounds(t *testing.T) {
	start, end := service.WeekBounds(fixedNow, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 16, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)

	sunday := time.Date(2025, 3, 16, 22, 0, 0, 0, time.UTC)
	s2, _ := service.WeekBounds(sunday, time.UTC)
	assert.Equal(t, start, s2)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s3, _ := service.WeekBounds(monday, time.UTC)
	assert.Equal(t, start, s3)

	// Monday 02:00 UTC is still Sunday evening in New York
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	s4, _ := service.WeekBounds(time.Date(2025, 3, 17, 2, 0, 0, 0, time.UTC), ny)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, ny), s4)
}

func TestGenerateMealCreatesMenu(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)

	res, err := f.svc.GenerateMeal(context.Background(), service.GenerateMealInput{
		UserID: "uid-1", Day: "Tuesday", MealType: "LUNCH",
	})
	require.NoError(t, err)
	assert.Equal(t, models.Tuesday, res.Day)
	assert.Equal(t, models.Lunch, res.MealType)
	assert.False(t, res.Fallback)
	assert.Equal(t, "Green Curry", res.Meal.Name)

	menu := f.menus.Get(res.MenuID)
	require.NotNil(t, menu)
	assert.Equal(t, "uid-1", menu.UserID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), menu.WeekStart)
	filled := 0
	for _, d := range models.Days {
		require.Len(t, menu.Menu[d], 3)
		for _, m := range models.MealTypes {
			if menu.Menu.Get(d, m) != nil {
				filled++
			}
		}
	}
	assert.Equal(t, 1, filled)
	assert.Equal(t, "Green Curry", menu.Menu.Get(models.Tuesday, models.Lunch).Name)
}

func TestGenerateMealIsIdempotentPerWeek(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	in := service.GenerateMealInput{UserID: "uid-1", Day: "monday", MealType: "dinner"}

	var wg sync.WaitGroup
	ids := make([]primitive.ObjectID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.GenerateMeal(context.Background(), in)
			if assert.NoError(t, err) {
				ids[i] = res.MenuID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, f.menus.Count())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestGenerateMealWithMenuID(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	first, err := f.svc.GenerateMeal(context.Background(), service.GenerateMealInput{UserID: "uid-1", Day: "monday", MealType: "breakfast"})
	require.NoError(t, err)

	res, err := f.svc.GenerateMeal(context.Background(), service.GenerateMealInput{
		UserID: "uid-1", Day: "sunday", MealType: "dinner", MenuID: first.MenuID.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.MenuID, res.MenuID)
	assert.Equal(t, 1, f.menus.Count())
	assert.NotNil(t, f.menus.Get(first.MenuID).Menu.Get(models.Sunday, models.Dinner))

	f.profiles.Upsert(context.Background(), testhelpers.Profile("uid-2"))
	_, err = f.svc.GenerateMeal(context.Background(), service.GenerateMealInput{
		UserID: "uid-2", Day: "sunday", MealType: "dinner", MenuID: first.MenuID.Hex(),
	})
	assert.ErrorIs(t, err, service.ErrMenuNotFound)

	_, err = f.svc.GenerateMeal(context.Background(), service.GenerateMealInput{
		UserID: "uid-1", Day: "sunday", MealType: "dinner", MenuID: primitive.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, service.ErrMenuNotFound)
}

func TestGenerateMealInvalidInput(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	ctx := context.Background()

	tests := []struct {
		name string
		in   service.GenerateMealInput
		want error
	}{
		{"bad day", service.GenerateMealInput{UserID: "uid-1", Day: "someday", MealType: "lunch"}, service.ErrInvalidInput},
		{"bad meal", service.GenerateMealInput{UserID: "uid-1", Day: "monday", MealType: "brunch"}, service.ErrInvalidInput},
		{"bad menu id", service.GenerateMealInput{UserID: "uid-1", Day: "monday", MealType: "lunch", MenuID: "xyz"}, service.ErrInvalidInput},
		{"no user id", service.GenerateMealInput{Day: "monday", MealType: "lunch"}, service.ErrInvalidInput},
		{"unknown user", service.GenerateMealInput{UserID: "ghost", Day: "monday", MealType: "lunch"}, service.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.GenerateMeal(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, f.menus.Count())
}

func TestGenerateMealFallsBackOnGarbage(t *testing.T) {
	f := newFixture(t, &testhelpers.StaticCompleter{Reply: "sorry, no JSON today"}, time.Second)

	res, err := f.svc.GenerateMeal(context.Background(), service.GenerateMealInput{UserID: "uid-1", Day: "friday", MealType: "breakfast"})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, "Vegan Breakfast", res.Meal.Name)
	assert.Equal(t, 350, res.Meal.Calories)
}

func TestGenerateWeekAllFailing(t *testing.T) {
	c := &testhelpers.StaticCompleter{Err: &service.CompletionError{Kind: service.FailureStatus, StatusCode: 503}}
	f := newFixture(t, c, time.Second)

	menu, err := f.svc.GenerateWeek(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 21, c.Calls())

	for _, d := range models.Days {
		for _, m := range models.MealTypes {
			r := menu.Menu.Get(d, m)
			require.NotNil(t, r)
			want := service.FallbackRecipe(m)
			want.ID = r.ID
			assert.Equal(t, want, r)
		}
	}
	assert.Equal(t, models.GeneratedByAI, menu.GeneratedBy)
}

func TestGenerateWeekDeadline(t *testing.T) {
	blocking := testhelpers.CompleterFunc(func(ctx context.Context, _ service.Prompt) (string, error) {
		<-ctx.Done()
		return "", &service.CompletionError{Kind: service.FailureTimeout, Err: ctx.Err()}
	})
	f := newFixture(t, blocking, 100*time.Millisecond)

	start := time.Now()
	menu, err := f.svc.GenerateWeek(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 21, menu.NutritionSummary().FilledSlots)
	assert.True(t, menu.Menu.Get(models.Wednesday, models.Lunch).IsFallback())
}

func TestGenerateWeekReplacesExistingMenu(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	ctx := context.Background()

	single, err := f.svc.GenerateMeal(ctx, service.GenerateMealInput{UserID: "uid-1", Day: "monday", MealType: "lunch"})
	require.NoError(t, err)

	first, err := f.svc.GenerateWeek(ctx, "uid-1")
	require.NoError(t, err)
	second, err := f.svc.GenerateWeek(ctx, "uid-1")
	require.NoError(t, err)

	assert.Equal(t, single.MenuID, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.menus.Count())
	assert.Equal(t, 21, second.NutritionSummary().FilledSlots)
}

func TestGenerateWeekUsesProfileTimezone(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	p := testhelpers.Profile("uid-tz")
	p.Profile.Personal.Timezone = "Asia/Tokyo"
	_, _ = f.profiles.Upsert(context.Background(), p)

	menu, err := f.svc.GenerateWeek(context.Background(), "uid-tz")
	require.NoError(t, err)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.True(t, menu.WeekStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, tokyo)))
}

func TestTimezoneChangeMidWeekKeepsOneMenu(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	ctx := context.Background()

	first, err := f.svc.GenerateMeal(ctx, service.GenerateMealInput{UserID: "uid-1", Day: "monday", MealType: "lunch"})
	require.NoError(t, err)

	// Wednesday 08:00 in Los Angeles, so the local week starts at a different instant
	p := testhelpers.Profile("uid-1")
	p.Profile.Personal.Timezone = "America/Los_Angeles"
	_, err = f.profiles.Upsert(ctx, p)
	require.NoError(t, err)

	current, err := f.svc.CurrentMenu(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, first.MenuID, current.ID)

	second, err := f.svc.GenerateMeal(ctx, service.GenerateMealInput{UserID: "uid-1", Day: "tuesday", MealType: "dinner"})
	require.NoError(t, err)
	assert.Equal(t, first.MenuID, second.MenuID)

	week, err := f.svc.GenerateWeek(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, first.MenuID, week.ID)
	assert.Equal(t, 1, f.menus.Count())

	utcStart, _ := service.WeekBounds(fixedNow, time.UTC)
	assert.True(t, week.WeekStart.Equal(utcStart))
}

func TestCurrentMenu(t *testing.T) {
	f := newFixture(t, okCompleter(), time.Second)
	ctx := context.Background()

	_, err := f.svc.CurrentMenu(ctx, "uid-1")
	assert.ErrorIs(t, err, service.ErrMenuNotFound)

	generated, err := f.svc.GenerateWeek(ctx, "uid-1")
	require.NoError(t, err)

	current, err := f.svc.CurrentMenu(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, generated.ID, current.ID)

	_, err = f.svc.CurrentMenu(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
