package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

var (
	ErrPlanExists      = errors.New("meal plan already exists for this date")
	ErrNoCandidates    = errors.New("no suitable recipes found")
	ErrNoPlans         = errors.New("no meal plans found")
	ErrInvalidPlanMode = errors.New("unknown plan mode")
	ErrInvalidDayCount = errors.New("day count must be positive")
)

// PlanMode selects the recipe-picking policy of the generator.
type PlanMode string

const (
	// PlanModeDeterministic takes the first recipes, in creation order,
	// from the preference-filtered candidate set.
	PlanModeDeterministic PlanMode = "deterministic"
	// PlanModeRandomSample draws recipes at random from the
	// preference-filtered candidate set.
	PlanModeRandomSample PlanMode = "random"
	// PlanModeRandomPerDay draws independently for every day from the
	// whole catalog, ignoring preferences.
	PlanModeRandomPerDay PlanMode = "shuffle"
)

// MealsPerDay is the fixed number of recipes assigned to each planned day.
const MealsPerDay = 3

// ShoppingListWindowDays is the inclusive look-ahead of the shopping list.
const ShoppingListWindowDays = 7

// GenerateOptions parameterizes a plan-generation run.
type GenerateOptions struct {
	StartDate time.Time
	Days      int
	Mode      PlanMode
	// Tags overrides the user's stored preference tags when non-empty.
	Tags []string
	// Persist controls whether the generated plans are written. Transient
	// results are returned without any database writes.
	Persist bool
}

// ShoppingListItem is one consolidated entry of a shopping list.
type ShoppingListItem struct {
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
}

// MealPlanService generates and reads meal plans.
type MealPlanService struct {
	db *gorm.DB
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// truncateToDay drops the time-of-day component so plan dates compare by day.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Generate produces one MealPlan per day according to the options. Every
// target date must be free of existing plans for the user; generation of a
// multi-day range is transactional, so a failure leaves nothing behind.
func (s *MealPlanService) Generate(ctx context.Context, userID uuid.UUID, opts GenerateOptions) ([]models.MealPlan, error) {
	if opts.Days <= 0 {
		return nil, ErrInvalidDayCount
	}
	switch opts.Mode {
	case PlanModeDeterministic, PlanModeRandomSample, PlanModeRandomPerDay:
	default:
		return nil, ErrInvalidPlanMode
	}

	start := truncateToDay(opts.StartDate)
	end := start.AddDate(0, 0, opts.Days-1)

	if opts.Persist {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.MealPlan{}).
			Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrPlanExists
		}
	}

	candidates, err := s.candidates(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	plans := make([]models.MealPlan, 0, opts.Days)
	for i := 0; i < opts.Days; i++ {
		date := start.AddDate(0, 0, i)
		plans = append(plans, models.MealPlan{
			UserID:  &userID,
			Date:    date,
			Recipes: pickRecipes(candidates, opts.Mode),
		})
	}

	if !opts.Persist {
		return plans, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range plans {
			if err := tx.Create(&plans[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// candidates assembles the recipe pool the generator draws from.
func (s *MealPlanService) candidates(ctx context.Context, userID uuid.UUID, opts GenerateOptions) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at").Find(&recipes).Error; err != nil {
		return nil, err
	}

	// The per-day shuffle draws from the whole catalog.
	if opts.Mode == PlanModeRandomPerDay {
		return recipes, nil
	}

	tags := normalizeTags(opts.Tags)
	if len(tags) == 0 {
		var prefs models.UserPreferences
		err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			tags = normalizeTags(prefs.Tags())
		}
	}
	if len(tags) == 0 {
		return recipes, nil
	}

	var filtered []models.Recipe
	for _, recipe := range recipes {
		if tagsOverlap(recipe.DietaryTags, tags) {
			filtered = append(filtered, recipe)
		}
	}
	return filtered, nil
}

// tagsOverlap reports whether any query tag matches a recipe tag. Matching
// is by case-insensitive substring, so "vegetarian" also covers
// "lacto-vegetarian".
func tagsOverlap(recipeTags []string, query []string) bool {
	for _, q := range query {
		for _, tag := range recipeTags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
	}
	return false
}

// pickRecipes selects MealsPerDay recipes from the pool without replacement.
func pickRecipes(pool []models.Recipe, mode PlanMode) []models.Recipe {
	n := MealsPerDay
	if n > len(pool) {
		n = len(pool)
	}
	if mode == PlanModeDeterministic {
		return append([]models.Recipe(nil), pool[:n]...)
	}
	idx := rand.Perm(len(pool))[:n]
	picked := make([]models.Recipe, 0, n)
	for _, i := range idx {
		picked = append(picked, pool[i])
	}
	return picked
}

// PlanForDate returns the user's plan for the given date.
func (s *MealPlanService) PlanForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Preload("Recipes").
		Where("user_id = ? AND date = ?", userID, truncateToDay(date)).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPlans
		}
		return nil, err
	}
	return &plan, nil
}

// PlansForWeek returns the user's plans for today through six days ahead.
func (s *MealPlanService) PlansForWeek(ctx context.Context, userID uuid.UUID, today time.Time) ([]models.MealPlan, error) {
	start := truncateToDay(today)
	end := start.AddDate(0, 0, 6)
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).Preload("Recipes").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, ErrNoPlans
	}
	return plans, nil
}

// ShoppingList aggregates ingredients across every plan in the window
// [today, today+7]. Entries are trimmed but deliberately not lower-cased.
func (s *MealPlanService) ShoppingList(ctx context.Context, userID uuid.UUID, today time.Time) ([]ShoppingListItem, error) {
	start := truncateToDay(today)
	end := start.AddDate(0, 0, ShoppingListWindowDays)

	var plans []models.MealPlan
	err := s.db.WithContext(ctx).Preload("Recipes").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, ErrNoPlans
	}

	counts := make(map[string]int)
	for _, plan := range plans {
		for _, recipe := range plan.Recipes {
			for _, entry := range recipe.Ingredients {
				for _, ingredient := range strings.Split(entry, ",") {
					ingredient = strings.TrimSpace(ingredient)
					if ingredient == "" {
						continue
					}
					counts[ingredient]++
				}
			}
		}
	}

	items := make([]ShoppingListItem, 0, len(counts))
	for ingredient, quantity := range counts {
		items = append(items, ShoppingListItem{Ingredient: ingredient, Quantity: quantity})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Ingredient < items[j].Ingredient })
	return items, nil
}

// History returns all of the user's plans, newest first, together with up to
// 5 highly rated recipes the user has not planned yet.
func (s *MealPlanService) History(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, []models.Recipe, error) {
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).Preload("Recipes").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&plans).Error
	if err != nil {
		return nil, nil, err
	}
	if len(plans) == 0 {
		return nil, nil, ErrNoPlans
	}

	seen := make(map[uuid.UUID]bool)
	for _, plan := range plans {
		for _, recipe := range plan.Recipes {
			seen[recipe.ID] = true
		}
	}

	var catalog []models.Recipe
	if err := s.db.WithContext(ctx).Order("rating DESC").Find(&catalog).Error; err != nil {
		return nil, nil, err
	}
	var recommended []models.Recipe
	for _, recipe := range catalog {
		if seen[recipe.ID] {
			continue
		}
		recommended = append(recommended, recipe)
		if len(recommended) == 5 {
			break
		}
	}
	return plans, recommended, nil
}
