package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/mealforge/backend/config"
	"github.com/mealforge/backend/internal/database"
	"github.com/mealforge/backend/internal/models"
)

var recipes = []models.Recipe{
	{
		Title:       "Vegetable Omelette",
		Ingredients: models.JSONStringArray{"egg", "milk", "bell pepper", "onion"},
		Instructions: models.JSONStringArray{
			"Whisk the eggs with the milk",
			"Saute the vegetables",
			"Cook the omelette on medium heat",
		},
		Nutrition:   models.JSONMap{"calories": 320, "protein": "18g", "carbs": "6g", "fat": "24g"},
		Category:    "breakfast",
		Cuisine:     "french",
		DietaryTags: models.JSONStringArray{"vegetarian", "gluten-free"},
	},
	{
		Title:       "Lentil Curry",
		Ingredients: models.JSONStringArray{"red lentils", "coconut milk", "onion", "garlic", "curry paste"},
		Instructions: models.JSONStringArray{
			"Soften the onion and garlic",
			"Add curry paste and lentils",
			"Simmer in coconut milk until tender",
		},
		Nutrition:   models.JSONMap{"calories": 450, "protein": "22g", "carbs": "48g", "fat": "14g"},
		Category:    "dinner",
		Cuisine:     "indian",
		DietaryTags: models.JSONStringArray{"vegan", "vegetarian"},
	},
	{
		Title:       "Grilled Chicken Salad",
		Ingredients: models.JSONStringArray{"chicken breast", "lettuce", "tomato", "olive oil"},
		Instructions: models.JSONStringArray{
			"Grill the chicken",
			"Toss with the greens and dressing",
		},
		Nutrition:   models.JSONMap{"calories": 380, "protein": "42g", "carbs": "8g", "fat": "18g"},
		Category:    "lunch",
		Cuisine:     "mediterranean",
		DietaryTags: models.JSONStringArray{"gluten-free", "high-protein"},
	},
}

var dietaryFilters = []string{"vegetarian", "vegan", "gluten-free", "dairy-free"}

var substitutes = map[string][]string{
	"butter":     {"margarine", "coconut oil", "olive oil"},
	"egg":        {"flax egg", "applesauce", "mashed banana"},
	"buttermilk": {"milk with lemon juice", "plain yogurt"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	for i := range recipes {
		if err := db.Where("title = ?", recipes[i].Title).FirstOrCreate(&recipes[i]).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipes[i].Title, err)
		}
	}

	for _, name := range dietaryFilters {
		filter := models.DietaryFilter{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&filter).Error; err != nil {
			log.Fatalf("Failed to seed dietary filter %q: %v", name, err)
		}
	}

	for ingredient, subs := range substitutes {
		entry := models.IngredientSubstitute{
			Ingredient:  ingredient,
			Substitutes: models.JSONStringArray(subs),
		}
		if err := db.Where("ingredient = ?", ingredient).FirstOrCreate(&entry).Error; err != nil {
			log.Fatalf("Failed to seed substitute %q: %v", ingredient, err)
		}
	}

	log.Printf("Seeded %d recipes, %d dietary filters, %d substitute entries",
		len(recipes), len(dietaryFilters), len(substitutes))
}
