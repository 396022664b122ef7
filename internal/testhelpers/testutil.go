package testhelpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pageza/vegandiet/backend/internal/models"
)

// PerformRequest sends a JSON request through h. An empty token sends no
// Authorization header.
func PerformRequest(h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals a recorded response body into v
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// Profile returns a filled-in profile for uid
func Profile(uid string) *models.UserProfile {
	p := &models.UserProfile{
		FirebaseUID:         uid,
		Email:               uid + "@example.com",
		Name:                "Test User",
		OnboardingCompleted: true,
	}
	p.Profile.Personal.HouseholdSize = 2
	p.Profile.Personal.Timezone = "UTC"
	p.Profile.Dietary.Allergies = []string{"peanuts"}
	p.Profile.FoodPreferences.FavoriteCuisines = []string{"Thai", "Mexican"}
	p.Profile.Cooking.SkillLevel = "Beginner"
	p.Profile.Cooking.TimeAvailable = 30
	p.Profile.Nutrition.PrimaryGoal = "Weight loss"
	p.Profile.Nutrition.CalorieTarget = 1800
	p.Profile.Budget.Level = "Low"
	return p
}
