package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/types"
)

// SubstituteHandler serves the ingredient substitution lookup.
type SubstituteHandler struct {
	substitutes *service.SubstituteService
}

func NewSubstituteHandler(substitutes *service.SubstituteService) *SubstituteHandler {
	return &SubstituteHandler{substitutes: substitutes}
}

func (h *SubstituteHandler) RegisterRoutes(router *gin.RouterGroup) {
	subs := router.Group("/substitutes")
	{
		subs.GET("", h.ListSubstitutes)
		subs.POST("", h.AddSubstitute)
		subs.GET("/:ingredient", h.GetSubstitute)
	}
}

func (h *SubstituteHandler) ListSubstitutes(c *gin.Context) {
	entries, err := h.substitutes.ListSubstitutes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch substitutes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"substitutes": entries})
}

func (h *SubstituteHandler) GetSubstitute(c *gin.Context) {
	ingredient := strings.ToLower(c.Param("ingredient"))
	entry, err := h.substitutes.GetSubstitute(c.Request.Context(), ingredient)
	if err != nil {
		if errors.Is(err, service.ErrSubstituteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"ingredient":  ingredient,
				"substitutes": []string{"No substitutes found."},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch substitute"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ingredient":  entry.Ingredient,
		"substitutes": entry.Substitutes,
	})
}

func (h *SubstituteHandler) AddSubstitute(c *gin.Context) {
	var req types.AddSubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.substitutes.AddSubstitute(c.Request.Context(), req.Ingredient, req.Substitutes)
	if err != nil {
		if errors.Is(err, service.ErrSubstituteExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Substitute entry already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add substitute"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}
