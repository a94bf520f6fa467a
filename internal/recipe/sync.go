package recipe

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grub-core/internal/errs"
	"grub-core/internal/food"
)

// GetUpdatedSince returns every recipe whose updated_at is strictly after
// since, for delta extraction. A zero since means "return all".
func (r *Repository) GetUpdatedSince(since time.Time) ([]Recipe, error) {
	q := r.db.Model(&Recipe{})
	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	var out []Recipe
	if err := q.Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// GetIngredientsUpdatedSince returns every recipe ingredient whose
// updated_at is strictly after since.
func (r *Repository) GetIngredientsUpdatedSince(since time.Time) ([]RecipeIngredient, error) {
	q := r.db.Model(&RecipeIngredient{})
	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	var out []RecipeIngredient
	if err := q.Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// GetRawByID retrieves the bare recipe row (no nutrition join) by local ID,
// used by the sync engine to resolve a recipe_id to its UUID during delta
// extraction.
func (r *Repository) GetRawByID(id uint) (*Recipe, error) {
	var rec Recipe
	if err := r.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.NewInternalError(err)
	}
	return &rec, nil
}

// GetByUUID retrieves a recipe by its shadow identity.
func (r *Repository) GetByUUID(id string) (*Recipe, error) {
	var rec Recipe
	if err := r.db.Where("uuid = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.NewInternalError(err)
	}
	return &rec, nil
}

// GetIngredientByUUID retrieves a recipe ingredient by its shadow identity.
func (r *Repository) GetIngredientByUUID(id string) (*RecipeIngredient, error) {
	var ri RecipeIngredient
	if err := r.db.Where("uuid = ?", id).First(&ri).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.NewInternalError(err)
	}
	return &ri, nil
}

// UpsertByUUID applies a sync-pushed recipe row: LWW by updated_at,
// matching the treatment of foods in the merge order.
// incoming.FoodID must already be resolved to a local food ID by the
// caller via the food_uuid to local_id map.
func (r *Repository) UpsertByUUID(incoming Recipe) error {
	existing, err := r.GetByUUID(incoming.UUID)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := r.db.Create(&incoming).Error; err != nil {
			return errs.NewInternalError(err)
		}
		return nil
	}
	if incoming.UpdatedAt.After(existing.UpdatedAt) {
		incoming.ID = existing.ID
		if err := r.db.Save(&incoming).Error; err != nil {
			return errs.NewInternalError(err)
		}
	}
	return nil
}

// UpsertIngredientByUUID replaces-by-UUID unconditionally: presence of a
// matching UUID is an update, absence is an insert. Recipe ingredients
// carry no meaningful version of their own.
// incoming.RecipeID and incoming.FoodID must already be resolved by the
// caller. Returns the local recipe ID touched, for the caller's post-pass
// recompute bookkeeping.
func (r *Repository) UpsertIngredientByUUID(incoming RecipeIngredient) (uint, error) {
	existing, err := r.GetIngredientByUUID(incoming.UUID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		if err := r.db.Create(&incoming).Error; err != nil {
			return 0, errs.NewInternalError(err)
		}
		return incoming.RecipeID, nil
	}
	incoming.ID = existing.ID
	if err := r.db.Save(&incoming).Error; err != nil {
		return 0, errs.NewInternalError(err)
	}
	return incoming.RecipeID, nil
}

// DeleteByUUID applies a tombstone for the recipes table: deletes the
// recipe, all of its ingredients, and its virtual food. Returns the
// deleted virtual food's UUID and the UUIDs of the deleted ingredients
// (both empty when nothing was deleted); no tombstone is written here for
// the virtual food. A missing recipe is not an error, the tombstone still
// applies cleanly. The whole cascade is skipped, atomically, when the
// recipe row was last updated after deletedAt: an edit newer than the
// tombstone wins, and the recipe, its ingredients, and its virtual food
// are all preserved together.
func (r *Repository) DeleteByUUID(id string, deletedAt time.Time) (foodUUID string, ingredientUUIDs []string, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var rec Recipe
		dberr := tx.Where("uuid = ?", id).First(&rec).Error
		if errors.Is(dberr, gorm.ErrRecordNotFound) {
			return nil
		}
		if dberr != nil {
			return errs.NewInternalError(dberr)
		}
		if !rec.UpdatedAt.Before(deletedAt) {
			return nil
		}

		var ingredients []RecipeIngredient
		if err := tx.Where("recipe_id = ?", rec.ID).Find(&ingredients).Error; err != nil {
			return errs.NewInternalError(err)
		}
		for _, ing := range ingredients {
			ingredientUUIDs = append(ingredientUUIDs, ing.UUID)
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeIngredient{}).Error; err != nil {
			return errs.NewInternalError(err)
		}

		var vf food.Food
		if err := tx.First(&vf, rec.FoodID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		foodUUID = vf.UUID

		if err := tx.Delete(&Recipe{}, rec.ID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		if err := tx.Delete(&food.Food{}, rec.FoodID).Error; err != nil {
			return errs.NewInternalError(err)
		}
		return nil
	})
	return foodUUID, ingredientUUIDs, err
}

// DeleteIngredientByUUID applies a tombstone for the recipe_ingredients
// table. Returns the local recipe ID so the caller can schedule a
// recompute, or 0 if the ingredient was already absent or was last
// updated after deletedAt (a newer edit wins over the tombstone).
func (r *Repository) DeleteIngredientByUUID(id string, deletedAt time.Time) (uint, error) {
	var ri RecipeIngredient
	err := r.db.Where("uuid = ?", id).First(&ri).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.NewInternalError(err)
	}
	if !ri.UpdatedAt.Before(deletedAt) {
		return 0, nil
	}
	if err := r.db.Delete(&RecipeIngredient{}, ri.ID).Error; err != nil {
		return 0, errs.NewInternalError(err)
	}
	return ri.RecipeID, nil
}

// MaterializeByID re-runs the recipe materializer for one recipe by local
// ID, inside its own transaction. This is the sync engine's post-pass
// step over every recipe whose ingredient set was touched.
func (r *Repository) MaterializeByID(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txFoods := food.NewRepository(tx)
		var rec Recipe
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return errs.NewInternalError(err)
		}
		return materialize(tx, txFoods, &rec)
	})
}
