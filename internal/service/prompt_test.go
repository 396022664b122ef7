package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

func TestBuildPromptWithEmptyProfile(t *testing.T) {
	for _, profile := range []*models.UserProfile{nil, {}} {
		for _, meal := range models.MealTypes {
			p := service.BuildPrompt(profile, meal, models.Wednesday)

			assert.Contains(t, p.System, "professional vegan chef and nutritionist")
			assert.Contains(t, p.User, "vegan "+string(meal)+" recipe")
			assert.Contains(t, p.User, "- Dietary restrictions: None")
			assert.Contains(t, p.User, "- Favorite cuisines: Various")
			assert.Contains(t, p.User, "- Cooking skill: Intermediate")
			assert.Contains(t, p.User, "- Time available: 30-45 minutes")
			assert.Contains(t, p.User, "- Health goals: General wellness")
			assert.Contains(t, p.User, "- Budget: Moderate")
			assert.Contains(t, p.User, "- Household size: Not specified")
			assert.Contains(t, p.User, `"cuisine": "International"`)
			assert.Contains(t, p.User, "no markdown")

			for _, bad := range []string{"<nil>", "undefined", "null", "%!"} {
				assert.NotContains(t, p.User, bad)
			}
		}
	}
}

func TestBuildPromptUsesProfile(t *testing.T) {
	profile := testhelpers.Profile("uid-1")
	profile.Profile.Dietary.Restrictions = []string{"gluten-free", " "}
	profile.Profile.Cooking.Equipment = []string{"wok"}

	p := service.BuildPrompt(profile, models.Lunch, models.Monday)

	assert.Contains(t, p.User, "- Dietary restrictions: gluten-free\n")
	assert.Contains(t, p.User, "- Allergies: peanuts")
	assert.Contains(t, p.User, "- Favorite cuisines: Thai, Mexican")
	assert.Contains(t, p.User, "- Cooking skill: Beginner")
	assert.Contains(t, p.User, "- Time available: 30 minutes")
	assert.Contains(t, p.User, "- Equipment: wok")
	assert.Contains(t, p.User, "- Health goals: Weight loss")
	assert.Contains(t, p.User, "- Household size: 2")
	assert.Contains(t, p.User, "- Budget: Low")
	// 1800 * 0.35
	assert.Contains(t, p.User, "about 630 calories")
	assert.Contains(t, p.User, "balanced, satisfying, and portable")
}

func TestBuildPromptFieldOrder(t *testing.T) {
	p := service.BuildPrompt(nil, models.Dinner, models.Friday)
	labels := []string{
		"Dietary restrictions", "Allergies", "Intolerances", "Favorite cuisines",
		"Disliked ingredients", "Preferred ingredients", "Spice tolerance", "Cooking skill",
		"Time available", "Equipment", "Health goals", "Calorie target per meal",
		"Household size", "Budget",
	}
	last := -1
	for _, l := range labels {
		i := strings.Index(p.User, "- "+l+":")
		assert.Greater(t, i, last, l)
		last = i
	}
}

func TestMealCalorieTarget(t *testing.T) {
	assert.Equal(t, 500, service.MealCalorieTarget(nil, models.Breakfast))
	assert.Equal(t, 700, service.MealCalorieTarget(nil, models.Lunch))
	assert.Equal(t, 700, service.MealCalorieTarget(nil, models.Dinner))
}

func TestPromptIgnoresDay(t *testing.T) {
	profile := testhelpers.Profile("uid-1")
	assert.Equal(t,
		service.BuildPrompt(profile, models.Breakfast, models.Monday),
		service.BuildPrompt(profile, models.Breakfast, models.Sunday),
	)
}
