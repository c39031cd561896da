package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeReview records a single user review of a recipe. A user may review
// the same recipe more than once.
type RecipeReview struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Rating     float64        `gorm:"not null" json:"rating"`
	ReviewText string         `gorm:"type:text" json:"review_text"`
}

func (RecipeReview) TableName() string {
	return "recipe_reviews"
}

func (r *RecipeReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
