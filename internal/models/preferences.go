package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPreferences holds a user's dietary preferences as a free-form mapping.
// The "tags" key, when present, is the tag list the meal plan generator
// consults. The whole mapping is overwritten on every update.
type UserPreferences struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DietaryPreferences JSONMap        `gorm:"type:jsonb;not null;default:'{}'" json:"dietary_preferences"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Tags returns the normalized tag list stored under the "tags" key.
func (p *UserPreferences) Tags() []string {
	raw, ok := p.DietaryPreferences["tags"]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// DietaryFilter is the catalog of selectable dietary filter names.
type DietaryFilter struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (DietaryFilter) TableName() string {
	return "dietary_filters"
}

func (f *DietaryFilter) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
