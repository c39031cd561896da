package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/types"
)

const dateLayout = "2006-01-02"

// MealPlanHandler serves plan generation, plan reads and the shopping list.
type MealPlanHandler struct {
	plans       *service.MealPlanService
	planLimiter *middleware.RateLimiter
}

func NewMealPlanHandler(plans *service.MealPlanService, planLimiter *middleware.RateLimiter) *MealPlanHandler {
	return &MealPlanHandler{
		plans:       plans,
		planLimiter: planLimiter,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("", h.planLimiter.Middleware(), h.PlanMeals)
		plans.POST("/weekly", h.planLimiter.Middleware(), h.WeeklyPlan)
		plans.POST("/preview", h.PreviewPlan)
		plans.GET("/today", h.TodayPlan)
		plans.GET("/week", h.WeekPlans)
		plans.GET("/history", h.History)
	}
	router.GET("/shopping-list", h.ShoppingList)
}

func parsePlanMode(raw string, fallback service.PlanMode) (service.PlanMode, bool) {
	if raw == "" {
		return fallback, true
	}
	mode := service.PlanMode(raw)
	switch mode {
	case service.PlanModeDeterministic, service.PlanModeRandomSample, service.PlanModeRandomPerDay:
		return mode, true
	}
	return "", false
}

// PlanMeals creates a persisted single-day plan from the user's stored
// preferences.
func (h *MealPlanHandler) PlanMeals(c *gin.Context) {
	var req types.PlanMealsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, use YYYY-MM-DD"})
		return
	}
	mode, ok := parsePlanMode(req.Mode, service.PlanModeDeterministic)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan mode"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	plans, err := h.plans.Generate(c.Request.Context(), userID, service.GenerateOptions{
		StartDate: date,
		Days:      1,
		Mode:      mode,
		Persist:   true,
	})
	if err != nil {
		h.writePlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plans[0])
}

// WeeklyPlan creates seven consecutive plans in one transaction.
func (h *MealPlanHandler) WeeklyPlan(c *gin.Context) {
	var req types.WeeklyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date is required"})
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	mode, ok := parsePlanMode(req.Mode, service.PlanModeRandomPerDay)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan mode"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	plans, err := h.plans.Generate(c.Request.Context(), userID, service.GenerateOptions{
		StartDate: start,
		Days:      7,
		Mode:      mode,
		Persist:   true,
	})
	if err != nil {
		h.writePlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal_plans": plans})
}

// PreviewPlan returns a transient plan suggestion without persisting it.
func (h *MealPlanHandler) PreviewPlan(c *gin.Context) {
	var req types.PreviewPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, use YYYY-MM-DD"})
		return
	}

	var tags []string
	if req.DietaryPreference != "" {
		tags = []string{req.DietaryPreference}
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	plans, err := h.plans.Generate(c.Request.Context(), userID, service.GenerateOptions{
		StartDate: date,
		Days:      1,
		Mode:      service.PlanModeRandomSample,
		Tags:      tags,
		Persist:   false,
	})
	if err != nil {
		h.writePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "meals": plans[0].Recipes})
}

func (h *MealPlanHandler) TodayPlan(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	plan, err := h.plans.PlanForDate(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoPlans) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No meal plan found for today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) WeekPlans(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	plans, err := h.plans.PlansForWeek(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoPlans) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No meal plans found for this week"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) History(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	plans, recommended, err := h.plans.History(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPlans) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No meal history found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meal_history":        plans,
		"recommended_recipes": recommended,
	})
}

func (h *MealPlanHandler) ShoppingList(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	items, err := h.plans.ShoppingList(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoPlans) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No meal plans found for the current week"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": items})
}

func (h *MealPlanHandler) writePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meal plan already exists for this date"})
	case errors.Is(err, service.ErrNoCandidates):
		c.JSON(http.StatusNotFound, gin.H{"error": "No suitable recipes found"})
	case errors.Is(err, service.ErrInvalidPlanMode), errors.Is(err, service.ErrInvalidDayCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate meal plan"})
	}
}
