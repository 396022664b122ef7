package router

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/middleware"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

func testDependencies(t *testing.T) Dependencies {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := testhelpers.NewProfileStore(testhelpers.Profile("uid-1"))
	menus := testhelpers.NewMenuStore()
	dishes := &testhelpers.DishStore{}
	stores := &testhelpers.StoreLocator{}
	completer := &testhelpers.StaticCompleter{Reply: testhelpers.RecipeJSON("Tofu Scramble", 410)}
	m := metrics.NewCollector()

	validator := &testhelpers.MockTokenValidator{}
	validator.AcceptToken("token-1", "uid-1")

	return Dependencies{
		Environment: "test",
		Metrics:     m,
		Auth:        validator,
		Planner: service.NewWeeklyMenuService(profiles, menus, dishes, stores,
			service.NewMealGenerator(completer, nil, m), nil, m,
			service.WeeklyMenuConfig{GenerationDeadline: time.Second}),
		Profiles:     service.NewProfileService(profiles, menus, nil, nil),
		Catalog:      service.NewCatalogService(dishes, stores),
		Alternatives: service.NewAlternativeService(completer, nil, m, time.Second),
	}
}

func TestSetupRouter(t *testing.T) {
	r := SetupRouter(testDependencies(t))

	w := testhelpers.PerformRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = testhelpers.PerformRequest(r, http.MethodGet, "/api/v1/weekly-menu/current", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testhelpers.PerformRequest(r, http.MethodPost, "/api/v1/weekly-menu/generate-meal", "token-1",
		map[string]any{"userId": "uid-1", "day": "sunday", "mealType": "breakfast"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testhelpers.PerformRequest(r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `vegandiet_menus_generated_total{mode="meal"} 1`)
	assert.Contains(t, w.Body.String(), "vegandiet_http_requests_total")
}

func TestGenerationRoutesAreRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	deps := testDependencies(t)
	deps.GenerationLimiter = middleware.NewGenerationRateLimiter(client, 1, nil, deps.Metrics)
	r := SetupRouter(deps)

	body := map[string]any{"userId": "uid-1", "day": "monday", "mealType": "lunch"}
	w := testhelpers.PerformRequest(r, http.MethodPost, "/api/v1/weekly-menu/generate-meal", "token-1", body)
	require.Equal(t, http.StatusOK, w.Code)
	w = testhelpers.PerformRequest(r, http.MethodPost, "/api/v1/weekly-menu/generate", "token-1",
		map[string]any{"userId": "uid-1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	w = testhelpers.PerformRequest(r, http.MethodPost, "/api/v1/dishes/vegan-alternative", "token-1",
		map[string]any{"name": "Chicken Curry"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are not limited
	w = testhelpers.PerformRequest(r, http.MethodGet, "/api/v1/weekly-menu/current", "token-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
