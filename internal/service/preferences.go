package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

var ErrFilterExists = errors.New("dietary filter already exists")

// PreferencesService manages per-user dietary preferences and the dietary
// filter catalog.
type PreferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new PreferencesService instance
func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// GetPreferences returns the user's stored preferences, or an empty mapping
// when none have been saved yet.
func (s *PreferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPreferences{
			UserID:             userID,
			DietaryPreferences: models.JSONMap{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences upserts the user's preferences, unconditionally
// overwriting the stored mapping. A nil payload clears the preferences.
func (s *PreferencesService) UpdatePreferences(ctx context.Context, userID uuid.UUID, preferences map[string]interface{}) (*models.UserPreferences, error) {
	if preferences == nil {
		preferences = map[string]interface{}{}
	}

	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.UserPreferences{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	prefs.DietaryPreferences = models.JSONMap(preferences)
	if err := s.db.WithContext(ctx).Save(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// ListDietaryFilters returns the filter catalog. The catalog table is the
// single source of truth for the selectable filter set.
func (s *PreferencesService) ListDietaryFilters(ctx context.Context) ([]models.DietaryFilter, error) {
	var filters []models.DietaryFilter
	if err := s.db.WithContext(ctx).Order("name").Find(&filters).Error; err != nil {
		return nil, err
	}
	return filters, nil
}

// CreateDietaryFilter adds a filter to the catalog. Names are stored
// normalized and must be unique.
func (s *PreferencesService) CreateDietaryFilter(ctx context.Context, name string) (*models.DietaryFilter, error) {
	normalized := normalizeTags([]string{name})
	if len(normalized) == 0 {
		return nil, errors.New("filter name is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.DietaryFilter{}).
		Where("name = ?", normalized[0]).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrFilterExists
	}

	filter := models.DietaryFilter{Name: normalized[0]}
	if err := s.db.WithContext(ctx).Create(&filter).Error; err != nil {
		return nil, err
	}
	return &filter, nil
}
