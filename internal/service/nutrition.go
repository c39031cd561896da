package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mealforge/backend/internal/models"
)

// nutritionGoal is one row of the goal table: which nutrient field it reads,
// and the threshold test applied to the parsed value.
type nutritionGoal struct {
	field     string
	fallback  string
	threshold int
	atLeast   bool
}

func (g nutritionGoal) matches(value int) bool {
	if g.atLeast {
		return value >= g.threshold
	}
	return value <= g.threshold
}

// nutritionGoals is the full catalog of supported goal keywords. Unknown
// keywords simply match nothing.
var nutritionGoals = map[string]nutritionGoal{
	"high-protein": {field: "protein", threshold: 40, atLeast: true},
	"low-protein":  {field: "protein", threshold: 20},
	"low-calorie":  {field: "calories", threshold: 400},
	"low-fat":      {field: "fat", fallback: "fats", threshold: 10},
	"high-fat":     {field: "fat", fallback: "fats", threshold: 20, atLeast: true},
	"high-carbs":   {field: "carbs", threshold: 30, atLeast: true},
}

// parseNutrient coerces a nutrition value to an integer, stripping a
// trailing "g" unit. The ok result is false for anything unparseable.
func parseNutrient(raw interface{}) (int, bool) {
	s := strings.TrimSpace(fmt.Sprintf("%v", raw))
	s = strings.TrimSuffix(s, "g")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FilterByNutritionGoal scans the catalog and keeps recipes satisfying the
// named goal. Recipes with missing or unparseable nutrition fields are
// skipped, never errored. An unknown goal yields an empty result.
func (s *RecipeService) FilterByNutritionGoal(ctx context.Context, goal string) ([]models.Recipe, error) {
	rule, known := nutritionGoals[strings.ToLower(strings.TrimSpace(goal))]
	if !known {
		return nil, nil
	}

	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	var matched []models.Recipe
	for _, recipe := range recipes {
		raw, ok := recipe.Nutrition[rule.field]
		if !ok && rule.fallback != "" {
			raw, ok = recipe.Nutrition[rule.fallback]
		}
		if !ok {
			continue
		}
		value, ok := parseNutrient(raw)
		if !ok {
			continue
		}
		if rule.matches(value) {
			matched = append(matched, recipe)
		}
	}
	return matched, nil
}
