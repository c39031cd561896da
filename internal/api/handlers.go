package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealforge/backend/config"
	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Mealforge API is running",
	})
}

// RegisterRoutes wires every handler onto the router. The Redis client and
// image service may be nil; the affected features degrade gracefully.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, images *service.ImageService, cfg *config.Config) {
	router.GET("/health", HealthCheck)

	authService := service.NewAuthService(cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, redisClient)
	mealPlanService := service.NewMealPlanService(db)
	preferencesService := service.NewPreferencesService(db)
	reviewService := service.NewReviewService(db)
	substituteService := service.NewSubstituteService(db)

	var writeLimiter, planLimiter *middleware.RateLimiter
	if redisClient != nil {
		writeLimiter = middleware.NewWriteRateLimiter(redisClient)
		planLimiter = middleware.NewPlanGenerationRateLimiter(redisClient)
	} else {
		log.Printf("Redis unavailable, rate limiting disabled")
	}

	recipeHandler := NewRecipeHandler(recipeService, images, writeLimiter)
	mealPlanHandler := NewMealPlanHandler(mealPlanService, planLimiter)
	preferencesHandler := NewPreferencesHandler(preferencesService)
	substituteHandler := NewSubstituteHandler(substituteService)
	reviewHandler := NewReviewHandler(reviewService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authService))
	{
		recipeHandler.RegisterRoutes(v1)
		mealPlanHandler.RegisterRoutes(v1)
		preferencesHandler.RegisterRoutes(v1)
		substituteHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1)
	}
}
