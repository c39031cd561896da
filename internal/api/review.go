package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/types"
)

// ReviewHandler serves recipe reviews.
type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/:id/reviews", h.ListReviews)
	router.POST("/recipes/:id/reviews", h.CreateReview)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	reviews, average, err := h.reviews.ListReviews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	if len(reviews) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No ratings yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": average,
	})
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating is required"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	review, err := h.reviews.CreateReview(c.Request.Context(), id, userID, *req.Rating, req.ReviewText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}
	c.JSON(http.StatusCreated, review)
}
