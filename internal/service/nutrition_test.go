package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/backend/internal/models"
)

func TestFilterByNutritionGoal(t *testing.T) {
	svc, _ := newRecipeService(t)
	ctx := context.Background()

	steak := seedRecipe(t, svc, "Steak", []string{"beef"}, func(r *models.Recipe) {
		r.Nutrition = models.JSONMap{"protein": "45g", "calories": 600}
	})
	salad := seedRecipe(t, svc, "Side Salad", []string{"lettuce"}, func(r *models.Recipe) {
		r.Nutrition = models.JSONMap{"protein": 3, "calories": 120}
	})
	// No nutrition data at all; never matches any goal.
	seedRecipe(t, svc, "Mystery Dish", []string{"leftovers"})

	results, err := svc.FilterByNutritionGoal(ctx, "high-protein")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, steak.ID, results[0].ID)

	results, err = svc.FilterByNutritionGoal(ctx, "low-protein")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, salad.ID, results[0].ID)

	results, err = svc.FilterByNutritionGoal(ctx, "low-calorie")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, salad.ID, results[0].ID)
}

func TestFilterByNutritionGoalUnknownGoal(t *testing.T) {
	svc, _ := newRecipeService(t)

	seedRecipe(t, svc, "Anything", []string{"food"}, func(r *models.Recipe) {
		r.Nutrition = models.JSONMap{"protein": "50g"}
	})

	results, err := svc.FilterByNutritionGoal(context.Background(), "high-vibes")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFilterByNutritionGoalSkipsUnparseable(t *testing.T) {
	svc, _ := newRecipeService(t)

	seedRecipe(t, svc, "Vague Bowl", []string{"grains"}, func(r *models.Recipe) {
		r.Nutrition = models.JSONMap{"protein": "plenty"}
	})

	results, err := svc.FilterByNutritionGoal(context.Background(), "high-protein")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFilterByNutritionGoalFatFallbackKey(t *testing.T) {
	svc, _ := newRecipeService(t)
	ctx := context.Background()

	fried := seedRecipe(t, svc, "Fried Chicken", []string{"chicken"}, func(r *models.Recipe) {
		r.Nutrition = models.JSONMap{"fats": "28g"}
	})

	results, err := svc.FilterByNutritionGoal(ctx, "high-fat")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, fried.ID, results[0].ID)

	results, err = svc.FilterByNutritionGoal(ctx, "low-fat")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseNutrient(t *testing.T) {
	cases := []struct {
		raw   interface{}
		value int
		ok    bool
	}{
		{"30g", 30, true},
		{"30", 30, true},
		{" 12g ", 12, true},
		{float64(40), 40, true},
		{7, 7, true},
		{"a lot", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		value, ok := parseNutrient(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%v", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.value, value, "raw=%v", tc.raw)
		}
	}
}
