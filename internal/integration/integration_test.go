package integration

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/repository"
	"github.com/pageza/vegandiet/backend/internal/router"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

const secret = "integration-secret"

type menuBody struct {
	Success bool              `json:"success"`
	Menu    models.WeeklyMenu `json:"menu"`
}

// TestWeeklyMenuFlow drives the HTTP API against a real MongoDB and a fake
// completion API that fails every lunch request.
func TestWeeklyMenuFlow(t *testing.T) {
	db := testhelpers.SetupTestMongo(t)
	gin.SetMode(gin.TestMode)

	llmServer := testhelpers.NewCompletionServer(t, func(req service.Request) (int, string) {
		if strings.Contains(req.Messages[len(req.Messages)-1].Content, "portable") {
			return http.StatusBadGateway, "upstream unavailable"
		}
		return http.StatusOK, testhelpers.RecipeJSON("Chickpea Stew", 600)
	})

	log := zaptest.NewLogger(t)
	m := metrics.NewCollector()
	profiles := repository.NewProfileRepository(db)
	dishes := repository.NewDishRepository(db)
	llm := service.NewLLMClient(service.LLMConfig{
		APIURL:  llmServer.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 2 * time.Second,
	}, llmServer.Client(), m)

	verifier := service.NewJWTVerifier(secret)
	menus := repository.NewMenuRepository(db)
	stores := repository.NewStoreRepository(db)
	handler := router.SetupRouter(router.Dependencies{
		Environment: "test",
		Logger:      log,
		Metrics:     m,
		Auth:        verifier,
		Planner: service.NewWeeklyMenuService(profiles, menus, dishes, stores,
			service.NewMealGenerator(llm, log, m), log, m,
			service.WeeklyMenuConfig{GenerationDeadline: 5 * time.Second}),
		Profiles:     service.NewProfileService(profiles, menus, nil, log),
		Catalog:      service.NewCatalogService(dishes, stores),
		Alternatives: service.NewAlternativeService(llm, log, m, 5*time.Second),
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db.Client())
		},
	})

	token, err := verifier.GenerateToken("uid-int", "int@example.com", time.Hour)
	require.NoError(t, err)

	w := testhelpers.PerformRequest(handler, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"connected"`)

	w = testhelpers.PerformRequest(handler, http.MethodPut, "/api/v1/users/profile", token, map[string]any{
		"name": "Integration",
		"profile": map[string]any{
			"personal":  map[string]any{"timezone": "Europe/Paris", "householdSize": 2},
			"nutrition": map[string]any{"calorieTarget": 2200},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("generate week", func(t *testing.T) {
		w := testhelpers.PerformRequest(handler, http.MethodPost, "/api/v1/weekly-menu/generate", token,
			map[string]any{"userId": "uid-int"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body menuBody
		testhelpers.DecodeJSON(t, w, &body)
		for _, d := range models.Days {
			assert.Equal(t, models.SourceFallback, body.Menu.Menu.Get(d, models.Lunch).Source)
			assert.Equal(t, "Chickpea Stew", body.Menu.Menu.Get(d, models.Dinner).Name)
		}
		assert.Len(t, llmServer.Requests(), 21)
		expected := `
# HELP vegandiet_meal_fallbacks_total Meals served from the fallback template
# TYPE vegandiet_meal_fallbacks_total counter
vegandiet_meal_fallbacks_total{kind="status",meal_type="lunch"} 7
`
		assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "vegandiet_meal_fallbacks_total"))
	})

	t.Run("generate meal is idempotent per week", func(t *testing.T) {
		var ids []string
		for i := 0; i < 2; i++ {
			w := testhelpers.PerformRequest(handler, http.MethodPost, "/api/v1/weekly-menu/generate-meal", token,
				map[string]any{"userId": "uid-int", "day": "wednesday", "mealType": "dinner"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var body struct {
				MenuID string `json:"menuId"`
			}
			testhelpers.DecodeJSON(t, w, &body)
			ids = append(ids, body.MenuID)
		}
		assert.Equal(t, ids[0], ids[1])

		n, err := db.Collection(database.WeeklyMenusCollection).CountDocuments(context.Background(), bson.M{"userId": "uid-int"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("swap and shopping list", func(t *testing.T) {
		_, err := dishes.UpsertByName(context.Background(), []models.Dish{
			testhelpers.VeganDish("Catalogue Chili", models.Ingredient{Name: "Kidney Beans", Quantity: "1 can"}),
		})
		require.NoError(t, err)

		w := testhelpers.PerformRequest(handler, http.MethodGet, "/api/v1/weekly-menu/current", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var current menuBody
		testhelpers.DecodeJSON(t, w, &current)
		menuID := current.Menu.ID.Hex()

		w = testhelpers.PerformRequest(handler, http.MethodPost, "/api/v1/weekly-menu/swap-meal", token,
			map[string]any{"userId": "uid-int", "menuId": menuID, "dayIndex": 6, "mealIndex": 2})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var swapped menuBody
		testhelpers.DecodeJSON(t, w, &swapped)
		assert.Equal(t, "Catalogue Chili", swapped.Menu.Menu.Get(models.Sunday, models.Dinner).Name)
		assert.Equal(t, "Chickpea Stew", swapped.Menu.Menu.Get(models.Saturday, models.Dinner).Name)

		w = testhelpers.PerformRequest(handler, http.MethodPost, "/api/v1/weekly-menu/shopping-list", token,
			map[string]any{"userId": "uid-int", "menuId": menuID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Kidney Beans")
		assert.Contains(t, w.Body.String(), `"totalItems"`)

		// another user cannot read it
		other, err := verifier.GenerateToken("uid-other", "", time.Hour)
		require.NoError(t, err)
		w = testhelpers.PerformRequest(handler, http.MethodPost, "/api/v1/weekly-menu/shopping-list", other,
			map[string]any{"userId": "uid-other", "menuId": menuID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
