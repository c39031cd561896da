package types

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string                 `json:"title" binding:"required"`
	Ingredients  []string               `json:"ingredients" binding:"required"`
	Instructions []string               `json:"instructions"`
	Nutrition    map[string]interface{} `json:"nutrition"`
	Rating       float64                `json:"rating"`
	Category     string                 `json:"category"`
	Cuisine      string                 `json:"cuisine"`
	DietaryTags  []string               `json:"dietary_tags"`
	ImageURL     string                 `json:"image_url"`
}

// UpdateRecipeRequest represents the request body for updating a recipe
type UpdateRecipeRequest struct {
	Title        string                 `json:"title"`
	Ingredients  []string               `json:"ingredients"`
	Instructions []string               `json:"instructions"`
	Nutrition    map[string]interface{} `json:"nutrition"`
	Category     string                 `json:"category"`
	Cuisine      string                 `json:"cuisine"`
	DietaryTags  []string               `json:"dietary_tags"`
	ImageURL     string                 `json:"image_url"`
}

// RateRecipeRequest carries the scalar rating overwrite.
type RateRecipeRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
}

// LeftoversRequest lists the ingredients on hand.
type LeftoversRequest struct {
	Ingredients []string `json:"ingredients"`
}

// PlanMealsRequest creates a persisted single-day plan.
type PlanMealsRequest struct {
	Date string `json:"date" binding:"required"`
	Mode string `json:"mode"`
}

// WeeklyPlanRequest creates seven consecutive persisted plans.
type WeeklyPlanRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	Mode      string `json:"mode"`
}

// PreviewPlanRequest produces a transient plan without persisting anything.
type PreviewPlanRequest struct {
	Date              string `json:"date" binding:"required"`
	DietaryPreference string `json:"dietary_preference"`
}

// UpdatePreferencesRequest overwrites the stored preference mapping.
type UpdatePreferencesRequest struct {
	DietaryPreferences map[string]interface{} `json:"dietary_preferences"`
}

// CreateDietaryFilterRequest adds a name to the filter catalog.
type CreateDietaryFilterRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddSubstituteRequest creates an ingredient substitute entry.
type AddSubstituteRequest struct {
	Ingredient  string   `json:"ingredient" binding:"required"`
	Substitutes []string `json:"substitutes" binding:"required"`
}

// CreateReviewRequest adds a review to a recipe.
type CreateReviewRequest struct {
	Rating     *float64 `json:"rating" binding:"required"`
	ReviewText string   `json:"review_text"`
}
