package sync

import (
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/recipe"
)

func foodToDTO(f food.Food) FoodDTO {
	return FoodDTO{
		UUID:            f.UUID,
		Name:            f.Name,
		Brand:           f.Brand,
		Barcode:         f.Barcode,
		CaloriesPer100g: f.CaloriesPer100g,
		ProteinPer100g:  f.ProteinPer100g,
		CarbsPer100g:    f.CarbsPer100g,
		FatPer100g:      f.FatPer100g,
		DefaultServingG: f.DefaultServingG,
		Source:          f.Source,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func dtoToFood(d FoodDTO) food.Food {
	return food.Food{
		UUID:            d.UUID,
		Name:            d.Name,
		Brand:           d.Brand,
		Barcode:         d.Barcode,
		CaloriesPer100g: d.CaloriesPer100g,
		ProteinPer100g:  d.ProteinPer100g,
		CarbsPer100g:    d.CarbsPer100g,
		FatPer100g:      d.FatPer100g,
		DefaultServingG: d.DefaultServingG,
		Source:          d.Source,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// mealToDTO needs the owning food's UUID, which the entry itself does not
// carry locally (it stores a local food_id).
func mealToDTO(e mealentry.Entry, foodUUID string) MealEntryDTO {
	return MealEntryDTO{
		UUID:            e.UUID,
		Date:            e.Date,
		MealType:        e.MealType,
		FoodUUID:        foodUUID,
		ServingG:        e.ServingG,
		DisplayUnit:     e.DisplayUnit,
		DisplayQuantity: e.DisplayQuantity,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func dtoToMeal(d MealEntryDTO, foodID uint) mealentry.Entry {
	return mealentry.Entry{
		UUID:            d.UUID,
		Date:            d.Date,
		MealType:        d.MealType,
		FoodID:          foodID,
		ServingG:        d.ServingG,
		DisplayUnit:     d.DisplayUnit,
		DisplayQuantity: d.DisplayQuantity,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func recipeToDTO(rec recipe.Recipe, foodUUID string) RecipeDTO {
	return RecipeDTO{
		UUID:      rec.UUID,
		FoodUUID:  foodUUID,
		Portions:  rec.Portions,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func dtoToRecipe(d RecipeDTO, foodID uint) recipe.Recipe {
	return recipe.Recipe{
		UUID:      d.UUID,
		FoodID:    foodID,
		Portions:  d.Portions,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ingredientToDTO(ri recipe.RecipeIngredient, recipeUUID, foodUUID string) IngredientDTO {
	return IngredientDTO{
		UUID:       ri.UUID,
		RecipeUUID: recipeUUID,
		FoodUUID:   foodUUID,
		QuantityG:  ri.QuantityG,
		UpdatedAt:  ri.UpdatedAt,
	}
}

func dtoToIngredient(d IngredientDTO, recipeID, foodID uint) recipe.RecipeIngredient {
	return recipe.RecipeIngredient{
		UUID:      d.UUID,
		RecipeID:  recipeID,
		FoodID:    foodID,
		QuantityG: d.QuantityG,
		UpdatedAt: d.UpdatedAt,
	}
}
