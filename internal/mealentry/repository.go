package mealentry

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grub-core/internal/errs"
	"grub-core/internal/food"
	"grub-core/internal/tombstone"
)

// Repository handles database operations for meal entries.
type Repository struct {
	db         *gorm.DB
	foods      *food.Repository
	tombstones *tombstone.Repository
}

func NewRepository(db *gorm.DB, foods *food.Repository, tombstones *tombstone.Repository) *Repository {
	return &Repository{db: db, foods: foods, tombstones: tombstones}
}

// Create inserts a meal entry. date must already be YYYY-MM-DD, meal_type
// canonical, serving_g > 0 (validated by the caller), and the food
// reference must exist.
func (r *Repository) Create(req CreateEntryRequest) (*WithNutrition, error) {
	if _, err := r.foods.GetByID(req.FoodID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &Entry{
		UUID:            uuid.NewString(),
		Date:            req.Date,
		MealType:        req.MealType,
		FoodID:          req.FoodID,
		ServingG:        req.ServingG,
		DisplayUnit:     req.DisplayUnit,
		DisplayQuantity: req.DisplayQuantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.db.Create(e).Error; err != nil {
		return nil, errs.NewBadRequestError("failed to create meal entry: " + err.Error())
	}
	return r.withNutrition(e)
}

// GetByID retrieves one entry with derived nutrition.
func (r *Repository) GetByID(id uint) (*WithNutrition, error) {
	var e Entry
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("meal entry", id)
		}
		return nil, errs.NewInternalError(err)
	}
	return r.withNutrition(&e)
}

// GetByDate retrieves every entry for a civil date in insertion order.
func (r *Repository) GetByDate(date string) ([]WithNutrition, error) {
	var entries []Entry
	if err := r.db.Where("date = ?", date).Order("id").Find(&entries).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return r.withNutritionBatch(entries)
}

// GetByDateRange retrieves entries across [start, end], inclusive.
func (r *Repository) GetByDateRange(start, end string) ([]WithNutrition, error) {
	var entries []Entry
	if err := r.db.Where("date >= ? AND date <= ?", start, end).Order("date, meal_type, created_at").Find(&entries).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return r.withNutritionBatch(entries)
}

// Update applies a partial patch. Plain fields are applied when non-nil;
// the display fields use the double-option encoding so "field absent"
// and "field explicitly nulled" are distinguishable. updated_at is
// bumped once regardless of how many fields changed.
func (r *Repository) Update(id uint, req UpdateEntryRequest) (*WithNutrition, error) {
	var e Entry
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("meal entry", id)
		}
		return nil, errs.NewInternalError(err)
	}

	if req.ServingG != nil {
		e.ServingG = *req.ServingG
	}
	if req.MealType != nil {
		e.MealType = *req.MealType
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.HasDisplayUnit() {
		e.DisplayUnit = req.DisplayUnitValue()
	}
	if req.HasDisplayQuantity() {
		e.DisplayQuantity = req.DisplayQuantityValue()
	}
	e.UpdatedAt = time.Now().UTC()

	if err := r.db.Save(&e).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return r.withNutrition(&e)
}

// Delete removes an entry by local ID and emits a tombstone so the
// deletion propagates through sync.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var e Entry
		if err := tx.First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("meal entry", id)
			}
			return errs.NewInternalError(err)
		}
		if err := tx.Delete(&Entry{}, id).Error; err != nil {
			return errs.NewInternalError(err)
		}
		return tombstone.NewRepository(tx).Put(tombstone.Tombstone{
			UUID:      e.UUID,
			Table:     "meal_entries",
			DeletedAt: time.Now().UTC(),
		})
	})
}

// GetRecentFoods returns the most recently logged distinct food IDs,
// newest first, capped at limit.
func (r *Repository) GetRecentFoods(limit int) ([]uint, error) {
	var foodIDs []uint
	err := r.db.Model(&Entry{}).
		Select("DISTINCT food_id").
		Order("created_at DESC").
		Limit(limit).
		Pluck("food_id", &foodIDs).Error
	if err != nil {
		return nil, errs.NewInternalError(err)
	}
	return foodIDs, nil
}

// UpsertByUUID applies a sync-pushed entry: if the UUID is unknown it is
// inserted as-is, preserving the incoming timestamp; otherwise plain LWW
// by updated_at.
func (r *Repository) UpsertByUUID(incoming Entry) error {
	var existing Entry
	err := r.db.Where("uuid = ?", incoming.UUID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewInternalError(err)
		}
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

// withNutrition joins a single entry with its food's derived values.
func (r *Repository) withNutrition(e *Entry) (*WithNutrition, error) {
	f, err := r.foods.GetByID(e.FoodID)
	if err != nil {
		return nil, err
	}
	return projectNutrition(*e, f), nil
}

func (r *Repository) withNutritionBatch(entries []Entry) ([]WithNutrition, error) {
	ids := make([]uint, 0, len(entries))
	seen := make(map[uint]bool, len(entries))
	for _, e := range entries {
		if !seen[e.FoodID] {
			seen[e.FoodID] = true
			ids = append(ids, e.FoodID)
		}
	}
	foods, err := r.foods.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*food.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	out := make([]WithNutrition, 0, len(entries))
	for _, e := range entries {
		out = append(out, *projectNutrition(e, byID[e.FoodID]))
	}
	return out, nil
}

// projectNutrition computes calories/protein/carbs/fat for a serving as
// f.macro_per_100g × serving_g / 100, never stored, always derived.
func projectNutrition(e Entry, f *food.Food) *WithNutrition {
	w := &WithNutrition{Entry: e}
	if f == nil {
		return w
	}
	scale := e.ServingG / 100.0
	w.FoodName = f.Name
	w.Calories = f.CaloriesPer100g * scale
	if f.ProteinPer100g != nil {
		w.Protein = *f.ProteinPer100g * scale
	}
	if f.CarbsPer100g != nil {
		w.Carbs = *f.CarbsPer100g * scale
	}
	if f.FatPer100g != nil {
		w.Fat = *f.FatPer100g * scale
	}
	return w
}
