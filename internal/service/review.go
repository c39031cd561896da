package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

// ReviewService records per-user recipe reviews.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ListReviews returns every review of the recipe along with the mean of
// their ratings. An empty list with a zero average is a valid outcome. The
// recipe itself must exist.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeReview, float64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, 0, ErrRecipeNotFound
	}

	var reviews []models.RecipeReview
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	var sum float64
	for _, review := range reviews {
		sum += review.Rating
	}
	average := 0.0
	if len(reviews) > 0 {
		average = sum / float64(len(reviews))
	}
	return reviews, average, nil
}

// CreateReview records a review bound to the user and recipe. Ratings
// outside [0,5] are rejected. Repeat reviews by the same user are allowed.
func (s *ReviewService) CreateReview(ctx context.Context, recipeID, userID uuid.UUID, rating float64, text string) (*models.RecipeReview, error) {
	if rating < 0 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrRecipeNotFound
	}

	review := models.RecipeReview{
		RecipeID:   recipeID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: text,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}
