package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientSubstitute maps a lower-cased ingredient name to acceptable
// replacements.
type IngredientSubstitute struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	Ingredient  string          `gorm:"size:255;not null;uniqueIndex" json:"ingredient"`
	Substitutes JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"substitutes"`
}

func (IngredientSubstitute) TableName() string {
	return "ingredient_substitutes"
}

func (s *IngredientSubstitute) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
