package common

// FoodSource classifies how a Food row came to exist in the catalog.
type FoodSource string

const (
	FoodSourceUser     FoodSource = "user"
	FoodSourceExternal FoodSource = "external"
	FoodSourceRecipe   FoodSource = "recipe"
)

var allFoodSources = []FoodSource{FoodSourceUser, FoodSourceExternal, FoodSourceRecipe}

// IsValidFoodSource checks if a source string is one of the canonical values.
func IsValidFoodSource(source string) bool {
	for _, s := range allFoodSources {
		if string(s) == source {
			return true
		}
	}
	return false
}

// MealType is the canonical classification of a meal entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypeOrder is the canonical grouping order used by the daily summary.
var MealTypeOrder = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func IsValidMealType(mealType string) bool {
	for _, m := range MealTypeOrder {
		if string(m) == mealType {
			return true
		}
	}
	return false
}

// WeightSource classifies how a weight entry was recorded.
type WeightSource string

const (
	WeightSourceManual WeightSource = "manual"
	WeightSourceSync   WeightSource = "sync"
	WeightSourceImport WeightSource = "import"
)

// TombstoneTables is the allow-list of tables a tombstone may target.
var TombstoneTables = map[string]bool{
	"foods":              true,
	"meal_entries":       true,
	"recipes":            true,
	"recipe_ingredients": true,
}
