package recipe

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grub-core/internal/common"
	"grub-core/internal/errs"
	"grub-core/internal/food"
	"grub-core/internal/tombstone"
)

// Repository handles database operations for recipes and their
// ingredients, plus the recipe materializer that keeps each recipe's
// virtual Food row in sync with its ingredient list.
type Repository struct {
	db         *gorm.DB
	foods      *food.Repository
	tombstones *tombstone.Repository
}

func NewRepository(db *gorm.DB, foods *food.Repository, tombstones *tombstone.Repository) *Repository {
	return &Repository{db: db, foods: foods, tombstones: tombstones}
}

// Create inserts a recipe, its ingredients, and materializes the virtual
// food in a single transaction.
func (r *Repository) Create(req CreateRecipeRequest) (*RecipeWithNutrition, error) {
	var out *RecipeWithNutrition
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txFoods := food.NewRepository(tx)

		vf, err := txFoods.CreateWithSource(food.CreateFoodRequest{
			Name:            req.Name,
			CaloriesPer100g: 0,
		}, common.FoodSourceRecipe)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		rec := &Recipe{
			UUID:      uuid.NewString(),
			FoodID:    vf.ID,
			Portions:  req.Portions,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(rec).Error; err != nil {
			return errs.NewBadRequestError("failed to create recipe: " + err.Error())
		}

		for _, ing := range req.Ingredients {
			ri := &RecipeIngredient{
				UUID:      uuid.NewString(),
				RecipeID:  rec.ID,
				FoodID:    ing.FoodID,
				QuantityG: ing.QuantityG,
				UpdatedAt: now,
			}
			if err := tx.Create(ri).Error; err != nil {
				return errs.NewBadRequestError("failed to create recipe ingredient: " + err.Error())
			}
		}

		if err := materialize(tx, txFoods, rec); err != nil {
			return err
		}

		full, err := loadWithNutrition(tx, txFoods, rec.ID)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a recipe with its derived nutrition and ingredient detail.
func (r *Repository) GetByID(id uint) (*RecipeWithNutrition, error) {
	return loadWithNutrition(r.db, r.foods, id)
}

// GetAll lists every recipe with derived nutrition.
func (r *Repository) GetAll() ([]RecipeWithNutrition, error) {
	var recipes []Recipe
	if err := r.db.Find(&recipes).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	out := make([]RecipeWithNutrition, 0, len(recipes))
	for _, rec := range recipes {
		full, err := loadWithNutrition(r.db, r.foods, rec.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *full)
	}
	return out, nil
}

// Update replaces portions and, if Ingredients is non-nil, the full
// ingredient set, then re-runs the materializer. Name changes are applied
// to the underlying virtual food.
func (r *Repository) Update(id uint, req UpdateRecipeRequest) (*RecipeWithNutrition, error) {
	var out *RecipeWithNutrition
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txFoods := food.NewRepository(tx)

		var rec Recipe
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("recipe", id)
			}
			return errs.NewInternalError(err)
		}

		if req.Portions != nil {
			rec.Portions = *req.Portions
		}
		rec.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&rec).Error; err != nil {
			return errs.NewInternalError(err)
		}

		if req.Name != nil {
			vf, err := txFoods.GetByID(rec.FoodID)
			if err != nil {
				return err
			}
			vf.Name = *req.Name
			if err := txFoods.Save(vf); err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeIngredient{}).Error; err != nil {
				return errs.NewInternalError(err)
			}
			for _, ing := range *req.Ingredients {
				ri := &RecipeIngredient{
					UUID:      uuid.NewString(),
					RecipeID:  rec.ID,
					FoodID:    ing.FoodID,
					QuantityG: ing.QuantityG,
					UpdatedAt: rec.UpdatedAt,
				}
				if err := tx.Create(ri).Error; err != nil {
					return errs.NewBadRequestError("failed to create recipe ingredient: " + err.Error())
				}
			}
		}

		if err := materialize(tx, txFoods, &rec); err != nil {
			return err
		}

		full, err := loadWithNutrition(tx, txFoods, rec.ID)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddIngredient appends one ingredient and re-materializes.
func (r *Repository) AddIngredient(recipeID uint, req CreateIngredientRequest) (*RecipeWithNutrition, error) {
	var out *RecipeWithNutrition
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txFoods := food.NewRepository(tx)

		var rec Recipe
		if err := tx.First(&rec, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("recipe", recipeID)
			}
			return errs.NewInternalError(err)
		}

		ri := &RecipeIngredient{
			UUID:      uuid.NewString(),
			RecipeID:  rec.ID,
			FoodID:    req.FoodID,
			QuantityG: req.QuantityG,
			UpdatedAt: time.Now().UTC(),
		}
		if err := tx.Create(ri).Error; err != nil {
			return errs.NewBadRequestError("failed to create recipe ingredient: " + err.Error())
		}

		if err := materialize(tx, txFoods, &rec); err != nil {
			return err
		}

		full, err := loadWithNutrition(tx, txFoods, rec.ID)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateIngredient changes a single ingredient's quantity and re-materializes.
func (r *Repository) UpdateIngredient(recipeID, ingredientID uint, quantityG float64) (*RecipeWithNutrition, error) {
	var out *RecipeWithNutrition
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txFoods := food.NewRepository(tx)

		var ri RecipeIngredient
		if err := tx.Where("id = ? AND recipe_id = ?", ingredientID, recipeID).First(&ri).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("recipe ingredient", ingredientID)
			}
			return errs.NewInternalError(err)
		}
		ri.QuantityG = quantityG
		ri.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&ri).Error; err != nil {
			return errs.NewInternalError(err)
		}

		var rec Recipe
		if err := tx.First(&rec, recipeID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := materialize(tx, txFoods, &rec); err != nil {
			return err
		}

		full, err := loadWithNutrition(tx, txFoods, rec.ID)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveIngredient deletes one ingredient and re-materializes.
func (r *Repository) RemoveIngredient(recipeID, ingredientID uint) (*RecipeWithNutrition, error) {
	var out *RecipeWithNutrition
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txFoods := food.NewRepository(tx)
		txTombstones := tombstone.NewRepository(tx)

		var ri RecipeIngredient
		if err := tx.Where("id = ? AND recipe_id = ?", ingredientID, recipeID).First(&ri).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("recipe ingredient", ingredientID)
			}
			return errs.NewInternalError(err)
		}
		if err := tx.Delete(&RecipeIngredient{}, ri.ID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := txTombstones.Put(tombstone.Tombstone{
			UUID:      ri.UUID,
			Table:     "recipe_ingredients",
			DeletedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		var rec Recipe
		if err := tx.First(&rec, recipeID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := materialize(tx, txFoods, &rec); err != nil {
			return err
		}

		full, err := loadWithNutrition(tx, txFoods, rec.ID)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a recipe, its ingredients, and its virtual food, emitting
// tombstones for the recipe and the virtual food so the deletion
// propagates through sync.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txTombstones := tombstone.NewRepository(tx)

		var rec Recipe
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("recipe", id)
			}
			return errs.NewInternalError(err)
		}

		var ingredients []RecipeIngredient
		if err := tx.Where("recipe_id = ?", id).Find(&ingredients).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeIngredient{}).Error; err != nil {
			return errs.NewInternalError(err)
		}

		now := time.Now().UTC()
		for _, ing := range ingredients {
			if err := txTombstones.Put(tombstone.Tombstone{UUID: ing.UUID, Table: "recipe_ingredients", DeletedAt: now}); err != nil {
				return err
			}
		}

		var vf food.Food
		if err := tx.First(&vf, rec.FoodID).Error; err != nil {
			return errs.NewInternalError(err)
		}

		if err := tx.Delete(&Recipe{}, id).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := txTombstones.Put(tombstone.Tombstone{UUID: rec.UUID, Table: "recipes", DeletedAt: now}); err != nil {
			return err
		}

		if err := tx.Delete(&food.Food{}, rec.FoodID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := txTombstones.Put(tombstone.Tombstone{UUID: vf.UUID, Table: "foods", DeletedAt: now}); err != nil {
			return err
		}
		return nil
	})
}

// materialize recomputes the recipe's virtual food: per-100g macros are
// the ingredient-weighted sum divided by total weight times 100, and
// default_serving_g is total weight divided by portions. A recipe with
// no ingredients yields a zeroed virtual food rather than dividing by
// zero.
func materialize(tx *gorm.DB, txFoods *food.Repository, rec *Recipe) error {
	var ingredients []RecipeIngredient
	if err := tx.Where("recipe_id = ?", rec.ID).Find(&ingredients).Error; err != nil {
		return errs.NewInternalError(err)
	}

	ids := make([]uint, 0, len(ingredients))
	for _, ing := range ingredients {
		ids = append(ids, ing.FoodID)
	}
	foods, err := foodsByID(tx, ids)
	if err != nil {
		return err
	}

	var totalWeight, totalCalories, totalProtein, totalCarbs, totalFat float64
	for _, ing := range ingredients {
		f, ok := foods[ing.FoodID]
		if !ok {
			continue
		}
		scale := ing.QuantityG / 100.0
		totalWeight += ing.QuantityG
		totalCalories += f.CaloriesPer100g * scale
		if f.ProteinPer100g != nil {
			totalProtein += *f.ProteinPer100g * scale
		}
		if f.CarbsPer100g != nil {
			totalCarbs += *f.CarbsPer100g * scale
		}
		if f.FatPer100g != nil {
			totalFat += *f.FatPer100g * scale
		}
	}

	vf, err := txFoods.GetByID(rec.FoodID)
	if err != nil {
		return err
	}

	if totalWeight == 0 {
		vf.CaloriesPer100g = 0
		zero := 0.0
		vf.ProteinPer100g = &zero
		vf.CarbsPer100g = &zero
		vf.FatPer100g = &zero
		vf.DefaultServingG = &zero
	} else {
		calories100 := totalCalories / totalWeight * 100
		protein100 := totalProtein / totalWeight * 100
		carbs100 := totalCarbs / totalWeight * 100
		fat100 := totalFat / totalWeight * 100
		serving := totalWeight
		if rec.Portions > 0 {
			serving = totalWeight / rec.Portions
		}
		vf.CaloriesPer100g = calories100
		vf.ProteinPer100g = &protein100
		vf.CarbsPer100g = &carbs100
		vf.FatPer100g = &fat100
		vf.DefaultServingG = &serving
	}

	return txFoods.Save(vf)
}

func foodsByID(tx *gorm.DB, ids []uint) (map[uint]*food.Food, error) {
	out := make(map[uint]*food.Food, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var foods []*food.Food
	if err := tx.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	for _, f := range foods {
		out[f.ID] = f
	}
	return out, nil
}

// loadWithNutrition assembles the detail response from the recipe, its
// virtual food, and its ingredients joined to their food names.
func loadWithNutrition(tx *gorm.DB, txFoods *food.Repository, recipeID uint) (*RecipeWithNutrition, error) {
	var rec Recipe
	if err := tx.First(&rec, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("recipe", recipeID)
		}
		return nil, errs.NewInternalError(err)
	}

	vf, err := txFoods.GetByID(rec.FoodID)
	if err != nil {
		return nil, err
	}

	var ingredients []RecipeIngredient
	if err := tx.Where("recipe_id = ?", rec.ID).Find(&ingredients).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}

	ids := make([]uint, 0, len(ingredients))
	for _, ing := range ingredients {
		ids = append(ids, ing.FoodID)
	}
	foods, err := foodsByID(tx, ids)
	if err != nil {
		return nil, err
	}

	var totalWeight float64
	details := make([]IngredientWithDetails, 0, len(ingredients))
	for _, ing := range ingredients {
		name := ""
		if f, ok := foods[ing.FoodID]; ok {
			name = f.Name
		}
		totalWeight += ing.QuantityG
		details = append(details, IngredientWithDetails{
			ID:        ing.ID,
			UUID:      ing.UUID,
			FoodID:    ing.FoodID,
			FoodName:  name,
			QuantityG: ing.QuantityG,
		})
	}

	protein, carbs, fat, serving := 0.0, 0.0, 0.0, 0.0
	if vf.ProteinPer100g != nil {
		protein = *vf.ProteinPer100g
	}
	if vf.CarbsPer100g != nil {
		carbs = *vf.CarbsPer100g
	}
	if vf.FatPer100g != nil {
		fat = *vf.FatPer100g
	}
	if vf.DefaultServingG != nil {
		serving = *vf.DefaultServingG
	}

	return &RecipeWithNutrition{
		ID:              rec.ID,
		UUID:            rec.UUID,
		Name:            vf.Name,
		Portions:        rec.Portions,
		TotalWeightG:    totalWeight,
		CaloriesPer100g: vf.CaloriesPer100g,
		ProteinPer100g:  protein,
		CarbsPer100g:    carbs,
		FatPer100g:      fat,
		DefaultServingG: serving,
		Ingredients:     details,
	}, nil
}
