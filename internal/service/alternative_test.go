package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

func TestBuildAlternativePrompt(t *testing.T) {
	p := service.BuildAlternativePrompt(service.DishDescription{
		Name:        "Beef Bourguignon",
		Description: "Slow braised beef",
		Cuisine:     "French",
		Ingredients: []models.Ingredient{{Name: "beef", Quantity: "1 kg"}, {Name: "red wine"}},
	})

	assert.Contains(t, p.System, "vegan alternatives")
	assert.Contains(t, p.User, "Dish Name: Beef Bourguignon\n")
	assert.Contains(t, p.User, "Description: Slow braised beef\n")
	assert.Contains(t, p.User, "Cuisine: French\n")
	assert.Contains(t, p.User, "- beef (1 kg)\n- red wine\n")
	assert.Contains(t, p.User, `"ingredients": [`)

	bare := service.BuildAlternativePrompt(service.DishDescription{Name: "Omelette"})
	assert.NotContains(t, bare.User, "Description:")
	assert.NotContains(t, bare.User, "Original Ingredients")
}

func TestAlternativeServiceGenerate(t *testing.T) {
	var got service.Prompt
	completer := testhelpers.CompleterFunc(func(_ context.Context, p service.Prompt) (string, error) {
		got = p
		return `{"name": "Mushroom Bourguignon", "calories": 1e3, "ingredients": [{"name": "mushrooms", "quantity": "500g"}]}`, nil
	})
	svc := service.NewAlternativeService(completer, nil, nil, time.Second)

	alt, err := svc.Generate(context.Background(), service.DishDescription{Name: " Beef Bourguignon ", Cuisine: "French"})
	require.NoError(t, err)

	assert.Contains(t, got.User, "Dish Name: Beef Bourguignon\n")
	assert.False(t, alt.Fallback)
	assert.Equal(t, "Beef Bourguignon", alt.OriginalDish)
	assert.Equal(t, "Mushroom Bourguignon", alt.Recipe.Name)
	assert.Equal(t, 1000, alt.Recipe.Calories)
	assert.Equal(t, "French", alt.Recipe.Cuisine)
	assert.Equal(t, "A vegan take on Beef Bourguignon", alt.Recipe.Description)
	assert.Equal(t, models.SourceAI, alt.Recipe.Source)
	assert.True(t, alt.Recipe.IsVegan)
}

func TestAlternativeServiceFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		c        service.Completer
		kind     service.FailureKind
		wantDesc string
	}{
		{"prose reply", &testhelpers.StaticCompleter{Reply: "Try jackfruit instead of pork."}, service.FailureMalformed, "Try jackfruit instead of pork."},
		{"status error", &testhelpers.StaticCompleter{Err: &service.CompletionError{Kind: service.FailureStatus, StatusCode: 502, Err: errors.New("bad gateway")}}, service.FailureStatus, "A vegan take on Pulled Pork"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			m := metrics.NewCollector()
			svc := service.NewAlternativeService(tt.c, zap.New(core), m, time.Second)

			alt, err := svc.Generate(context.Background(), service.DishDescription{Name: "Pulled Pork"})
			require.NoError(t, err)

			assert.True(t, alt.Fallback)
			assert.Equal(t, "Vegan Pulled Pork", alt.Recipe.Name)
			assert.Equal(t, tt.wantDesc, alt.Recipe.Description)
			assert.Equal(t, 4, alt.Recipe.Servings)
			assert.Equal(t, models.DifficultyMedium, alt.Recipe.Difficulty)
			assert.True(t, alt.Recipe.IsFallback())

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, string(tt.kind), logs.All()[0].ContextMap()["failure_kind"])
			assert.Equal(t, 1.0, fallbackCount(t, m, "alternative", string(tt.kind)))
		})
	}
}

func TestAlternativeServiceRequiresName(t *testing.T) {
	completer := &testhelpers.StaticCompleter{Reply: testhelpers.RecipeJSON("Anything", 300)}
	svc := service.NewAlternativeService(completer, nil, nil, time.Second)

	_, err := svc.Generate(context.Background(), service.DishDescription{Name: "   "})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Zero(t, completer.Calls())
}
