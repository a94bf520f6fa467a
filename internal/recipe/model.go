package recipe

import "time"

// Recipe is a composite food with a portion count. Its virtual Food is a
// real catalog row (source="recipe") whose nutrition is always derived,
// never directly edited; see the materializer in repository.go. Recipe
// carries its own shadow identity independent of the virtual food's, since
// the sync merge treats recipes and foods as distinct sync-participating
// tables.
type Recipe struct {
	ID        uint      `json:"id" gorm:"column:id;primaryKey"`
	UUID      string    `json:"uuid" gorm:"column:uuid;uniqueIndex"`
	FoodID    uint      `json:"food_id" gorm:"column:food_id;not null"`
	Portions  float64   `json:"portions" gorm:"column:portions;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"-"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is a quantity of some Food within a Recipe. It has no
// meaningful version of its own: the sync merge replaces-by-UUID rather
// than LWW-comparing it, but still stamps updated_at so the virtual
// food's own recompute has a trustworthy timestamp.
type RecipeIngredient struct {
	ID        uint      `json:"id" gorm:"column:id;primaryKey"`
	UUID      string    `json:"uuid" gorm:"column:uuid;uniqueIndex"`
	RecipeID  uint      `json:"recipe_id" gorm:"column:recipe_id;not null"`
	FoodID    uint      `json:"food_id" gorm:"column:food_id;not null"`
	QuantityG float64   `json:"quantity_g" gorm:"column:quantity_g;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// CreateRecipeRequest is the request to create a recipe with its initial
// ingredient set.
type CreateRecipeRequest struct {
	Name        string                    `json:"name"`
	Portions    float64                   `json:"portions"`
	Ingredients []CreateIngredientRequest `json:"ingredients"`
}

type CreateIngredientRequest struct {
	FoodID    uint    `json:"food_id"`
	QuantityG float64 `json:"quantity_g"`
}

// UpdateRecipeRequest replaces a recipe's name/portions and, if provided,
// its full ingredient set.
type UpdateRecipeRequest struct {
	Name        *string                    `json:"name,omitempty"`
	Portions    *float64                   `json:"portions,omitempty"`
	Ingredients *[]CreateIngredientRequest `json:"ingredients,omitempty"`
}

// RecipeWithNutrition is the detail response: the recipe plus its virtual
// food's derived totals and per-100g macros.
type RecipeWithNutrition struct {
	ID              uint                    `json:"id"`
	UUID            string                  `json:"uuid"`
	Name            string                  `json:"name"`
	Portions        float64                 `json:"portions"`
	TotalWeightG    float64                 `json:"total_weight_g"`
	CaloriesPer100g float64                 `json:"calories_per_100g"`
	ProteinPer100g  float64                 `json:"protein_per_100g"`
	CarbsPer100g    float64                 `json:"carbs_per_100g"`
	FatPer100g      float64                 `json:"fat_per_100g"`
	DefaultServingG float64                 `json:"default_serving_g"`
	Ingredients     []IngredientWithDetails `json:"ingredients"`
}

type IngredientWithDetails struct {
	ID        uint    `json:"id"`
	UUID      string  `json:"uuid"`
	FoodID    uint    `json:"food_id"`
	FoodName  string  `json:"food_name"`
	QuantityG float64 `json:"quantity_g"`
}
