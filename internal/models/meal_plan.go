package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlan assigns a set of recipes to a user for one date. UserID is
// nullable to keep legacy anonymous plans loadable. Recipes are set once at
// creation and never updated in place.
type MealPlan struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	Date      time.Time      `gorm:"type:date;not null;index" json:"date"`
	Recipes   []Recipe       `gorm:"many2many:meal_plan_recipes" json:"recipes"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
