package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/types"
)

// PreferencesHandler serves user preferences and the dietary filter catalog.
type PreferencesHandler struct {
	preferences *service.PreferencesService
}

func NewPreferencesHandler(preferences *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferences: preferences}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/preferences", h.GetPreferences)
	router.PUT("/preferences", h.UpdatePreferences)
	router.GET("/dietary-filters", h.ListDietaryFilters)
	router.POST("/dietary-filters", h.CreateDietaryFilter)
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	prefs, err := h.preferences.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences overwrites the stored mapping. Omitting the
// dietary_preferences key clears it.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	prefs, err := h.preferences.UpdatePreferences(c.Request.Context(), userID, req.DietaryPreferences)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferencesHandler) ListDietaryFilters(c *gin.Context) {
	filters, err := h.preferences.ListDietaryFilters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dietary filters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

func (h *PreferencesHandler) CreateDietaryFilter(c *gin.Context) {
	var req types.CreateDietaryFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := h.preferences.CreateDietaryFilter(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrFilterExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dietary filter already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dietary filter"})
		return
	}
	c.JSON(http.StatusCreated, filter)
}
