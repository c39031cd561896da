package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

var (
	ErrSubstituteNotFound = errors.New("no substitutes found")
	ErrSubstituteExists   = errors.New("substitute entry already exists")
)

// SubstituteService is the ingredient substitution lookup.
type SubstituteService struct {
	db *gorm.DB
}

// NewSubstituteService creates a new SubstituteService instance
func NewSubstituteService(db *gorm.DB) *SubstituteService {
	return &SubstituteService{db: db}
}

// ListSubstitutes returns every substitute entry.
func (s *SubstituteService) ListSubstitutes(ctx context.Context) ([]models.IngredientSubstitute, error) {
	var entries []models.IngredientSubstitute
	if err := s.db.WithContext(ctx).Order("ingredient").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetSubstitute looks up the entry for an ingredient. Names are matched
// lower-cased.
func (s *SubstituteService) GetSubstitute(ctx context.Context, ingredient string) (*models.IngredientSubstitute, error) {
	name := strings.ToLower(strings.TrimSpace(ingredient))
	var entry models.IngredientSubstitute
	err := s.db.WithContext(ctx).Where("ingredient = ?", name).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubstituteNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// AddSubstitute creates a substitute entry keyed by the lower-cased
// ingredient name. Duplicate names are rejected.
func (s *SubstituteService) AddSubstitute(ctx context.Context, ingredient string, substitutes []string) (*models.IngredientSubstitute, error) {
	name := strings.ToLower(strings.TrimSpace(ingredient))
	if name == "" {
		return nil, errors.New("ingredient name is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.IngredientSubstitute{}).
		Where("ingredient = ?", name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSubstituteExists
	}

	entry := models.IngredientSubstitute{
		Ingredient:  name,
		Substitutes: models.JSONStringArray(substitutes),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
