package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")
	ErrAlreadyFavorite  = errors.New("recipe is already in favorites")
	ErrEmptyCatalog     = errors.New("no recipes available")
)

const (
	popularRecipesCacheKey = "recipes:popular"
	popularRecipesLimit    = 10
	popularCacheExpiration = 30 * time.Minute
)

// RecipeService handles recipe catalog operations. The Redis client is
// optional; when nil the popular-recipes cache is skipped.
type RecipeService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, redisClient *redis.Client) *RecipeService {
	return &RecipeService{
		db:    db,
		redis: redisClient,
	}
}

// normalizeTags lower-cases and trims tag strings, dropping empties.
func normalizeTags(tags []string) models.JSONStringArray {
	out := make(models.JSONStringArray, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CreateRecipe creates a new recipe, normalizing its dietary tags.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.Rating < 0 || recipe.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	recipe.DietaryTags = normalizeTags(recipe.DietaryTags)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	s.invalidatePopularCache(ctx)
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe updates a recipe and returns the stored result.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return nil, err
	}
	recipe.DietaryTags = normalizeTags(recipe.DietaryTags)
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(recipe).Error; err != nil {
		return nil, err
	}
	s.invalidatePopularCache(ctx)
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.invalidatePopularCache(ctx)
	return nil
}

// ListRecipes lists the whole catalog.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ingredientsColumn returns the SQL expression for the ingredients field as
// searchable text for the active dialect.
func (s *RecipeService) ingredientsColumn() string {
	if s.db.Dialector.Name() == "postgres" {
		return "LOWER(ingredients::text)"
	}
	return "LOWER(ingredients)"
}

// SearchByIngredients keeps recipes whose ingredients contain every query
// term as a case-insensitive substring. The loose substring match ("egg"
// matches "eggplant") is deliberate.
func (s *RecipeService) SearchByIngredients(ctx context.Context, terms []string) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	col := s.ingredientsColumn()
	matched := false
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		matched = true
		query = query.Where(col+" LIKE ?", "%"+term+"%")
	}
	if !matched {
		return nil, nil
	}

	var recipes []models.Recipe
	if err := query.Order("created_at").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// RandomRecipe draws one recipe uniformly at random from the catalog.
func (s *RecipeService) RandomRecipe(ctx context.Context) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Order("RANDOM()").First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCatalog
		}
		return nil, err
	}
	return &recipe, nil
}

// Recommendations returns up to 3 random recipes excluding the given one.
func (s *RecipeService) Recommendations(ctx context.Context, id uuid.UUID) ([]models.Recipe, error) {
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return nil, err
	}
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("RANDOM()").
		Limit(3).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// RateRecipe overwrites the recipe's rating scalar with the submitted value.
func (s *RecipeService) RateRecipe(ctx context.Context, id uuid.UUID, rating float64) (*models.Recipe, error) {
	if rating < 0 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(recipe).Update("rating", rating).Error; err != nil {
		return nil, err
	}
	s.invalidatePopularCache(ctx)
	return s.GetRecipe(ctx, id)
}

// AddFavorite marks a recipe as a favorite of the user. Adding twice fails.
func (s *RecipeService) AddFavorite(ctx context.Context, recipeID, userID uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFavorite
	}
	fav := models.RecipeFavorite{RecipeID: recipeID, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return err
	}
	s.invalidatePopularCache(ctx)
	return nil
}

// RemoveFavorite removes a recipe from the user's favorites.
func (s *RecipeService) RemoveFavorite(ctx context.Context, recipeID, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.RecipeFavorite{}).Error
	if err != nil {
		return err
	}
	s.invalidatePopularCache(ctx)
	return nil
}

// PopularRecipes returns the top 10 recipes ordered by rating then favorites
// count. Results are cached in Redis when a client is configured.
func (s *RecipeService) PopularRecipes(ctx context.Context) ([]models.Recipe, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, popularRecipesCacheKey).Result()
		if err == nil {
			var recipes []models.Recipe
			if err := json.Unmarshal([]byte(cached), &recipes); err == nil {
				return recipes, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("popular recipes cache read failed: %v", err)
		}
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("recipes.*").
		Joins("LEFT JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Group("recipes.id").
		Order("recipes.rating DESC, COUNT(recipe_favorites.id) DESC").
		Limit(popularRecipesLimit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(recipes); err == nil {
			if err := s.redis.Set(ctx, popularRecipesCacheKey, data, popularCacheExpiration).Err(); err != nil {
				log.Printf("popular recipes cache write failed: %v", err)
			}
		}
	}
	return recipes, nil
}

func (s *RecipeService) invalidatePopularCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, popularRecipesCacheKey).Err(); err != nil {
		log.Printf("popular recipes cache invalidation failed: %v", err)
	}
}

// NutritionSummary extracts the fixed summary fields from a recipe's
// nutrition mapping, substituting "N/A" for anything missing.
func (s *RecipeService) NutritionSummary(ctx context.Context, id uuid.UUID) (string, map[string]interface{}, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return "", nil, err
	}
	summary := make(map[string]interface{}, 5)
	for _, key := range []string{"calories", "protein", "carbohydrates", "fat", "fiber"} {
		if v, ok := recipe.Nutrition[key]; ok {
			summary[key] = v
		} else {
			summary[key] = "N/A"
		}
	}
	return recipe.Title, summary, nil
}
