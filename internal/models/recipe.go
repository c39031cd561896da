package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONStringArray is a custom type for handling string arrays stored as JSON
type JSONStringArray []string

// Value implements the driver.Valuer interface
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// JSONMap is a custom type for handling free-form JSON objects
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Recipe is a catalog entry. Nutrition values may be numeric or carry a
// trailing unit (e.g. "30g"); rating is a single mutable scalar in [0,5].
type Recipe struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Ingredients  JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Nutrition    JSONMap         `gorm:"type:jsonb;not null;default:'{}'" json:"nutrition"`
	Rating       float64         `gorm:"not null;default:0" json:"rating"`
	Category     string          `gorm:"size:100" json:"category"`
	Cuisine      string          `gorm:"size:100" json:"cuisine"`
	DietaryTags  JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_tags"`
	ImageURL     string          `gorm:"size:255" json:"image_url"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeFavorite marks a recipe as a favorite of a user.
type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}

func (f *RecipeFavorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
