package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
	"github.com/mealforge/backend/internal/testdb"
)

func newMealPlanEnv(t *testing.T) (*MealPlanService, *RecipeService, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	return NewMealPlanService(db), NewRecipeService(db, nil), db
}

func seedCatalog(t *testing.T, recipes *RecipeService, n int, tags ...string) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedRecipe(t, recipes, fmt.Sprintf("Recipe %d", i), []string{fmt.Sprintf("ingredient-%d", i)}, func(r *models.Recipe) {
			r.DietaryTags = models.JSONStringArray(tags)
		})
	}
}

func countPlans(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.MealPlan{}).Count(&count).Error)
	return count
}

func TestGenerateWeekly(t *testing.T) {
	plans, recipes, db := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 9)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	generated, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: start,
		Days:      7,
		Mode:      PlanModeRandomPerDay,
		Persist:   true,
	})
	require.NoError(t, err)
	require.Len(t, generated, 7)

	for i, plan := range generated {
		assert.Equal(t, start.AddDate(0, 0, i), plan.Date)
		assert.Len(t, plan.Recipes, MealsPerDay)
	}
	assert.Equal(t, int64(7), countPlans(t, db))

	week, err := plans.PlansForWeek(ctx, userID, start)
	require.NoError(t, err)
	assert.Len(t, week, 7)
}

func TestGenerateRejectsOverlappingRange(t *testing.T) {
	plans, recipes, db := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 5)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: start.AddDate(0, 0, 3),
		Days:      1,
		Mode:      PlanModeDeterministic,
		Persist:   true,
	})
	require.NoError(t, err)

	// The week overlaps the existing day-3 plan, so nothing is written.
	_, err = plans.Generate(ctx, userID, GenerateOptions{
		StartDate: start,
		Days:      7,
		Mode:      PlanModeRandomPerDay,
		Persist:   true,
	})
	assert.ErrorIs(t, err, ErrPlanExists)
	assert.Equal(t, int64(1), countPlans(t, db))

	// Another user is unaffected by the first user's plans.
	_, err = plans.Generate(ctx, uuid.New(), GenerateOptions{
		StartDate: start,
		Days:      7,
		Mode:      PlanModeRandomPerDay,
		Persist:   true,
	})
	require.NoError(t, err)
}

func TestGenerateDeterministicUsesStoredPreferences(t *testing.T) {
	plans, recipes, db := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 4, "vegetarian")
	seedCatalog(t, recipes, 4, "keto")

	prefsService := NewPreferencesService(db)
	_, err := prefsService.UpdatePreferences(ctx, userID, map[string]interface{}{
		"tags": []interface{}{"vegetarian"},
	})
	require.NoError(t, err)

	generated, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Days:      1,
		Mode:      PlanModeDeterministic,
		Persist:   true,
	})
	require.NoError(t, err)
	require.Len(t, generated, 1)
	require.Len(t, generated[0].Recipes, MealsPerDay)
	for _, recipe := range generated[0].Recipes {
		assert.Contains(t, []string(recipe.DietaryTags), "vegetarian")
	}
}

func TestGenerateTagOverrideAndSubstringMatch(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)
	ctx := context.Background()

	seedCatalog(t, recipes, 3, "lacto-vegetarian")
	seedCatalog(t, recipes, 3, "pescatarian")

	// "vegetarian" matches "lacto-vegetarian" by substring.
	generated, err := plans.Generate(ctx, uuid.New(), GenerateOptions{
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Days:      1,
		Mode:      PlanModeRandomSample,
		Tags:      []string{"Vegetarian"},
		Persist:   false,
	})
	require.NoError(t, err)
	require.Len(t, generated, 1)
	for _, recipe := range generated[0].Recipes {
		assert.Contains(t, []string(recipe.DietaryTags), "lacto-vegetarian")
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)

	seedCatalog(t, recipes, 3, "vegan")

	_, err := plans.Generate(context.Background(), uuid.New(), GenerateOptions{
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Days:      1,
		Mode:      PlanModeDeterministic,
		Tags:      []string{"carnivore"},
		Persist:   true,
	})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGenerateValidation(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 3)

	_, err := plans.Generate(ctx, userID, GenerateOptions{Days: 0, Mode: PlanModeDeterministic})
	assert.ErrorIs(t, err, ErrInvalidDayCount)

	_, err = plans.Generate(ctx, userID, GenerateOptions{Days: 1, Mode: PlanMode("chaotic")})
	assert.ErrorIs(t, err, ErrInvalidPlanMode)
}

func TestGenerateTransientDoesNotPersist(t *testing.T) {
	plans, recipes, db := newMealPlanEnv(t)
	ctx := context.Background()

	seedCatalog(t, recipes, 5)

	generated, err := plans.Generate(ctx, uuid.New(), GenerateOptions{
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Days:      1,
		Mode:      PlanModeRandomSample,
		Persist:   false,
	})
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.Len(t, generated[0].Recipes, MealsPerDay)
	assert.Equal(t, int64(0), countPlans(t, db))
}

func TestPlanForDate(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 3)

	date := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	_, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: date,
		Days:      1,
		Mode:      PlanModeDeterministic,
		Persist:   true,
	})
	require.NoError(t, err)

	// Lookup ignores the time-of-day component.
	plan, err := plans.PlanForDate(ctx, userID, time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, plan.Recipes, MealsPerDay)

	_, err = plans.PlanForDate(ctx, userID, date.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrNoPlans)
}

func TestShoppingList(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedRecipe(t, recipes, "Omelette", []string{"2 eggs, milk", "butter"})
	seedRecipe(t, recipes, "Pancakes", []string{"milk", "flour"})
	seedRecipe(t, recipes, "Scramble", []string{"2 eggs, milk"})

	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: today,
		Days:      1,
		Mode:      PlanModeDeterministic,
		Persist:   true,
	})
	require.NoError(t, err)

	items, err := plans.ShoppingList(ctx, userID, today)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Ingredient] = item.Quantity
	}
	// Comma-separated entries are split and trimmed before counting.
	assert.Equal(t, 2, counts["2 eggs"])
	assert.Equal(t, 3, counts["milk"])
	assert.Equal(t, 1, counts["butter"])
	assert.Equal(t, 1, counts["flour"])

	// The list is deterministic across repeated reads.
	again, err := plans.ShoppingList(ctx, userID, today)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestShoppingListWindow(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 3)

	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// A plan eight days out falls outside the seven-day window.
	_, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: today.AddDate(0, 0, 8),
		Days:      1,
		Mode:      PlanModeDeterministic,
		Persist:   true,
	})
	require.NoError(t, err)

	_, err = plans.ShoppingList(ctx, userID, today)
	assert.ErrorIs(t, err, ErrNoPlans)
}

func TestShoppingListNoPlans(t *testing.T) {
	plans, _, _ := newMealPlanEnv(t)

	_, err := plans.ShoppingList(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrNoPlans)
}

func TestHistory(t *testing.T) {
	plans, recipes, _ := newMealPlanEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCatalog(t, recipes, 3)
	unseen := seedRecipe(t, recipes, "Never Planned", []string{"truffle"}, func(r *models.Recipe) {
		r.Rating = 5
	})

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := plans.Generate(ctx, userID, GenerateOptions{
		StartDate: start,
		Days:      2,
		Mode:      PlanModeDeterministic,
		Persist:   true,
	})
	require.NoError(t, err)

	history, recommended, err := plans.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest plans first.
	assert.True(t, history[0].Date.After(history[1].Date))

	// Recommendations exclude recipes already seen in the history.
	require.Len(t, recommended, 1)
	assert.Equal(t, unseen.ID, recommended[0].ID)

	_, _, err = plans.History(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNoPlans)
}
