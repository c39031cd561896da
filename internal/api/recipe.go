package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/models"
	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/types"
)

const maxImageUploadBytes = 5 << 20

// RecipeHandler serves the recipe catalog surface.
type RecipeHandler struct {
	recipes      *service.RecipeService
	images       *service.ImageService
	writeLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		images:       images,
		writeLimiter: writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchByIngredients)
		recipes.GET("/nutrition", h.SearchByNutrition)
		recipes.GET("/random", h.RandomRecipe)
		recipes.GET("/popular", h.PopularRecipes)
		recipes.POST("/leftovers", h.SuggestFromLeftovers)
		recipes.POST("", h.writeLimiter.Middleware(), h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.writeLimiter.Middleware(), h.UpdateRecipe)
		recipes.DELETE("/:id", h.writeLimiter.Middleware(), h.DeleteRecipe)
		recipes.GET("/:id/recommendations", h.Recommendations)
		recipes.GET("/:id/nutrition", h.RecipeNutrition)
		recipes.GET("/:id/summary", h.NutritionSummary)
		recipes.POST("/:id/rate", h.RateRecipe)
		recipes.POST("/:id/favorite", h.AddFavorite)
		recipes.DELETE("/:id/favorite", h.RemoveFavorite)
		recipes.POST("/:id/image", h.writeLimiter.Middleware(), h.UploadImage)
	}
}

func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Ingredients:  models.JSONStringArray(req.Ingredients),
		Instructions: models.JSONStringArray(req.Instructions),
		Nutrition:    models.JSONMap(req.Nutrition),
		Rating:       req.Rating,
		Category:     req.Category,
		Cuisine:      req.Cuisine,
		DietaryTags:  models.JSONStringArray(req.DietaryTags),
		ImageURL:     req.ImageURL,
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		if errors.Is(err, service.ErrRatingOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Ingredients:  models.JSONStringArray(req.Ingredients),
		Instructions: models.JSONStringArray(req.Instructions),
		Nutrition:    models.JSONMap(req.Nutrition),
		Category:     req.Category,
		Cuisine:      req.Cuisine,
		DietaryTags:  models.JSONStringArray(req.DietaryTags),
		ImageURL:     req.ImageURL,
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, recipe)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
}

// SearchByIngredients filters the catalog by a comma-separated ingredient
// query. Zero matches is a success with a message, not an error.
func (h *RecipeHandler) SearchByIngredients(c *gin.Context) {
	query := c.Query("ingredients")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ingredients provided"})
		return
	}

	recipes, err := h.recipes.SearchByIngredients(c.Request.Context(), strings.Split(query, ","))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No recipes found for the given ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SearchByNutrition filters by a named nutrition goal. Unknown goals yield
// an empty result, not an error.
func (h *RecipeHandler) SearchByNutrition(c *gin.Context) {
	goal := c.Query("goal")
	recipes, err := h.recipes.FilterByNutritionGoal(c.Request.Context(), goal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter recipes"})
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No recipes found for goal: '" + goal + "'"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) RandomRecipe(c *gin.Context) {
	recipe, err := h.recipes.RandomRecipe(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCatalog) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No recipes available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) PopularRecipes(c *gin.Context) {
	recipes, err := h.recipes.PopularRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch popular recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) Recommendations(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.Recommendations(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) RecipeNutrition(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe.Nutrition)
}

func (h *RecipeHandler) NutritionSummary(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	title, summary, err := h.recipes.NutritionSummary(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": title, "nutritional_summary": summary})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating is required"})
		return
	}

	recipe, err := h.recipes.RateRecipe(c.Request.Context(), id, *req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be a number between 0 and 5"})
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rate recipe"})
		}
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uuid.UUID)

	err := h.recipes.AddFavorite(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyFavorite):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe is already in favorites"})
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to favorite recipe"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe added to favorites"})
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.recipes.RemoveFavorite(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfavorite recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from favorites"})
}

// SuggestFromLeftovers matches recipes containing every leftover ingredient.
func (h *RecipeHandler) SuggestFromLeftovers(c *gin.Context) {
	var req types.LeftoversRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No leftover ingredients provided"})
		return
	}

	recipes, err := h.recipes.SearchByIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipes found using the provided ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// UploadImage stores a recipe image and records its URL on the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	recipe.ImageURL = url
	if _, err := h.recipes.UpdateRecipe(c.Request.Context(), id, recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
