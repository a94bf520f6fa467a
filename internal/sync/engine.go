package sync

import (
	"net/http"
	"time"

	"grub-core/internal/errs"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/recipe"
	"grub-core/internal/target"
	"grub-core/internal/tombstone"
	"grub-core/internal/weight"
)

// Engine is the sync subsystem's single entry point: ChangesSince extracts
// a delta, Apply merges one in.
type Engine struct {
	foods      *food.Repository
	meals      *mealentry.Repository
	recipes    *recipe.Repository
	targets    *target.Repository
	weights    *weight.Repository
	tombstones *tombstone.Repository
}

func NewEngine(
	foods *food.Repository,
	meals *mealentry.Repository,
	recipes *recipe.Repository,
	targets *target.Repository,
	weights *weight.Repository,
	tombstones *tombstone.Repository,
) *Engine {
	return &Engine{
		foods:      foods,
		meals:      meals,
		recipes:    recipes,
		targets:    targets,
		weights:    weights,
		tombstones: tombstones,
	}
}

func isNotFound(err error) bool {
	ae, ok := err.(*errs.AppError)
	return ok && ae.StatusCode == http.StatusNotFound
}

// ChangesSince extracts every row updated after since (or everything, for
// a zero since) across every sync-participating table, plus tombstones,
// stamped with a fresh server timestamp.
func (e *Engine) ChangesSince(since time.Time) (*Delta, error) {
	foods, err := e.foods.GetUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	meals, err := e.meals.GetUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	recipes, err := e.recipes.GetUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	ingredients, err := e.recipes.GetIngredientsUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	targets, err := e.targets.GetUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	weights, err := e.weights.GetUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	tombstones, err := e.tombstones.GetSince(since)
	if err != nil {
		return nil, err
	}

	d := &Delta{
		ServerTimestamp: time.Now().UTC(),
		Targets:         targets,
		WeightEntries:   weights,
	}
	for _, f := range foods {
		d.Foods = append(d.Foods, foodToDTO(f))
	}
	for _, m := range meals {
		f, err := e.foods.GetByID(m.FoodID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		d.MealEntries = append(d.MealEntries, mealToDTO(m, f.UUID))
	}
	for _, rec := range recipes {
		f, err := e.foods.GetByID(rec.FoodID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		d.Recipes = append(d.Recipes, recipeToDTO(rec, f.UUID))
	}
	// Ingredients need both their recipe's and their food's UUID; resolve by
	// local ID via a small in-memory cache rather than one query per row.
	recipeUUIDByID := make(map[uint]string, len(recipes))
	for _, rec := range recipes {
		recipeUUIDByID[rec.ID] = rec.UUID
	}
	foodUUIDByID := make(map[uint]string)
	for _, ing := range ingredients {
		recUUID, ok := recipeUUIDByID[ing.RecipeID]
		if !ok {
			rr, err := e.recipes.GetRawByID(ing.RecipeID)
			if err != nil {
				return nil, err
			}
			if rr == nil {
				continue
			}
			recUUID = rr.UUID
			recipeUUIDByID[ing.RecipeID] = recUUID
		}
		fUUID, ok := foodUUIDByID[ing.FoodID]
		if !ok {
			f, err := e.foods.GetByID(ing.FoodID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, err
			}
			fUUID = f.UUID
			foodUUIDByID[ing.FoodID] = fUUID
		}
		d.RecipeIngredients = append(d.RecipeIngredients, ingredientToDTO(ing, recUUID, fUUID))
	}
	for _, t := range tombstones {
		d.Tombstones = append(d.Tombstones, TombstoneDTO{UUID: t.UUID, Table: t.Table, DeletedAt: t.DeletedAt})
	}
	return d, nil
}

// Apply merges an incoming Delta into the local store, in a fixed order:
// foods, meal entries, recipes, recipe ingredients, targets, tombstones,
// weight entries, then a materializer re-run over every recipe whose
// ingredients changed.
func (e *Engine) Apply(d Delta) error {
	foodUUIDToLocal := make(map[string]uint, len(d.Foods))

	for _, fd := range d.Foods {
		id, err := e.foods.UpsertByUUID(dtoToFood(fd))
		if err != nil {
			return err
		}
		foodUUIDToLocal[fd.UUID] = id
	}
	resolveFoodID := func(foodUUID string) (uint, bool) {
		if id, ok := foodUUIDToLocal[foodUUID]; ok {
			return id, true
		}
		f, err := e.foods.GetByUUID(foodUUID)
		if err != nil || f == nil {
			return 0, false
		}
		foodUUIDToLocal[foodUUID] = f.ID
		return f.ID, true
	}

	for _, md := range d.MealEntries {
		foodID, ok := resolveFoodID(md.FoodUUID)
		if !ok {
			continue
		}
		if err := e.meals.UpsertByUUID(dtoToMeal(md, foodID)); err != nil {
			return err
		}
	}

	recipeUUIDToLocal := make(map[string]uint, len(d.Recipes))
	for _, rd := range d.Recipes {
		foodID, ok := resolveFoodID(rd.FoodUUID)
		if !ok {
			continue
		}
		if err := e.recipes.UpsertByUUID(dtoToRecipe(rd, foodID)); err != nil {
			return err
		}
		rec, err := e.recipes.GetByUUID(rd.UUID)
		if err != nil {
			return err
		}
		if rec != nil {
			recipeUUIDToLocal[rd.UUID] = rec.ID
		}
	}
	resolveRecipeID := func(recipeUUID string) (uint, bool) {
		if id, ok := recipeUUIDToLocal[recipeUUID]; ok {
			return id, true
		}
		rec, err := e.recipes.GetByUUID(recipeUUID)
		if err != nil || rec == nil {
			return 0, false
		}
		recipeUUIDToLocal[recipeUUID] = rec.ID
		return rec.ID, true
	}

	touchedRecipes := make(map[uint]bool)
	for _, id := range d.RecipeIngredients {
		recipeID, ok := resolveRecipeID(id.RecipeUUID)
		if !ok {
			continue
		}
		foodID, ok := resolveFoodID(id.FoodUUID)
		if !ok {
			continue
		}
		rid, err := e.recipes.UpsertIngredientByUUID(dtoToIngredient(id, recipeID, foodID))
		if err != nil {
			return err
		}
		touchedRecipes[rid] = true
	}

	for _, t := range d.Targets {
		if err := e.targets.Upsert(t); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, td := range d.Tombstones {
		deletedAt := td.DeletedAt
		if deletedAt.After(now) {
			deletedAt = now
		}
		switch td.Table {
		case "foods":
			if err := e.foods.DeleteByUUID(td.UUID, deletedAt); err != nil {
				return err
			}
		case "meal_entries":
			if err := e.meals.DeleteByUUID(td.UUID, deletedAt); err != nil {
				return err
			}
		case "recipes":
			// DeleteByUUID also returns the ingredient UUIDs it cascaded
			// away; no caller action needed since MaterializeByID is a
			// harmless no-op for a recipe ID that no longer exists.
			foodUUID, _, err := e.recipes.DeleteByUUID(td.UUID, deletedAt)
			if err != nil {
				return err
			}
			if foodUUID != "" {
				if err := e.foods.DeleteByUUID(foodUUID, deletedAt); err != nil {
					return err
				}
			}
		case "recipe_ingredients":
			rid, err := e.recipes.DeleteIngredientByUUID(td.UUID, deletedAt)
			if err != nil {
				return err
			}
			if rid != 0 {
				touchedRecipes[rid] = true
			}
		}
		exists, err := e.tombstones.Exists(td.UUID, td.Table)
		if err != nil {
			return err
		}
		if !exists {
			if err := e.tombstones.Put(tombstone.Tombstone{UUID: td.UUID, Table: td.Table, DeletedAt: deletedAt}); err != nil {
				return err
			}
		}
	}

	for _, wd := range d.WeightEntries {
		if err := e.weights.MergeIncoming(wd); err != nil {
			return err
		}
	}

	for recipeID := range touchedRecipes {
		if recipeID == 0 {
			continue
		}
		if err := e.recipes.MaterializeByID(recipeID); err != nil {
			return err
		}
	}
	return nil
}
