package database

import (
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

// Migrate applies the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Recipe{},
		&models.RecipeFavorite{},
		&models.MealPlan{},
		&models.UserPreferences{},
		&models.DietaryFilter{},
		&models.IngredientSubstitute{},
		&models.RecipeReview{},
	)
}
