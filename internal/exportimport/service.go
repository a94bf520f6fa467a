package exportimport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grub-core/internal/errs"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/recipe"
	"grub-core/internal/sync"
	"grub-core/internal/target"
	"grub-core/internal/validate"
	"grub-core/internal/weight"
)

// Service implements GET /api/export and POST /api/import.
type Service struct {
	db       *gorm.DB
	engine   *sync.Engine
	recipes  *recipe.Repository
	targets  *target.Repository
	deviceID func() (string, error)
}

func NewService(db *gorm.DB, engine *sync.Engine, recipes *recipe.Repository, targets *target.Repository, deviceID func() (string, error)) *Service {
	return &Service{db: db, engine: engine, recipes: recipes, targets: targets, deviceID: deviceID}
}

// Export snapshots the full store: every sync-participating row from the
// beginning of time, in the same wire shape the sync engine deltas use.
func (s *Service) Export() (*ExportV3, error) {
	delta, err := s.engine.ChangesSince(time.Time{})
	if err != nil {
		return nil, err
	}
	id, err := s.deviceID()
	if err != nil {
		return nil, errs.NewInternalError(err)
	}
	return &ExportV3{
		Version:           currentExportVersion,
		ExportedAt:        time.Now().UTC(),
		DeviceID:          id,
		Foods:             delta.Foods,
		MealEntries:       delta.MealEntries,
		Recipes:           delta.Recipes,
		RecipeIngredients: delta.RecipeIngredients,
		Targets:           delta.Targets,
		WeightEntries:     delta.WeightEntries,
		Tombstones:        delta.Tombstones,
	}, nil
}

// Import dispatches on the body's version field: absent or 1 is the
// legacy ID-preserving format, 2+ is merged the same way the sync engine
// merges a push.
func (s *Service) Import(raw []byte) (*ImportResult, error) {
	var probe versionProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errs.NewBadRequestError("invalid import body: " + err.Error())
	}

	if probe.Version >= 2 {
		var body ExportV3
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, errs.NewBadRequestError("invalid import body: " + err.Error())
		}
		return s.importCurrent(body)
	}

	var body ImportV1
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errs.NewBadRequestError("invalid import body: " + err.Error())
	}
	return s.importLegacy(body)
}

func (s *Service) importCurrent(body ExportV3) (*ImportResult, error) {
	d := sync.Delta{
		Foods:             body.Foods,
		MealEntries:       body.MealEntries,
		Recipes:           body.Recipes,
		RecipeIngredients: body.RecipeIngredients,
		Targets:           body.Targets,
		WeightEntries:     body.WeightEntries,
		Tombstones:        body.Tombstones,
	}
	if err := s.engine.Apply(d); err != nil {
		return nil, err
	}
	return &ImportResult{
		Version:           body.Version,
		FoodsApplied:      len(body.Foods),
		MealEntries:       len(body.MealEntries),
		Recipes:           len(body.Recipes),
		RecipeIngredients: len(body.RecipeIngredients),
		Targets:           len(body.Targets),
		WeightEntries:     len(body.WeightEntries),
		Tombstones:        len(body.Tombstones),
	}, nil
}

// importLegacy applies a v1 body. Foods and meal entries preserve their
// original local IDs (upsert-by-ID, via ON CONFLICT DO UPDATE); weight
// entries are upserted by date, keeping the local row's ID and UUID when
// that date already exists; recipes have no stable identity of their own to preserve in v1
// (they're defined only by name/portions/ingredients) so they're inserted
// fresh through the normal recipe creation path. The singleton target is
// expanded into all seven weekday rows.
func (s *Service) importLegacy(body ImportV1) (*ImportResult, error) {
	result := &ImportResult{Version: 1}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		for _, lf := range body.Foods {
			row := food.Food{
				ID:              lf.ID,
				UUID:            uuid.NewString(),
				Name:            lf.Name,
				Brand:           lf.Brand,
				Barcode:         lf.Barcode,
				CaloriesPer100g: lf.CaloriesPer100g,
				ProteinPer100g:  lf.ProteinPer100g,
				CarbsPer100g:    lf.CarbsPer100g,
				FatPer100g:      lf.FatPer100g,
				DefaultServingG: lf.DefaultServingG,
				Source:          "user",
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := upsertByID(tx, &row); err != nil {
				return err
			}
			result.FoodsApplied++
		}

		for _, lm := range body.MealEntries {
			if err := validate.MealEntry(validate.MealEntryInput{Date: lm.Date, MealType: lm.MealType, ServingG: lm.ServingG}); err != nil {
				continue
			}
			row := mealentry.Entry{
				ID:              lm.ID,
				UUID:            uuid.NewString(),
				Date:            lm.Date,
				MealType:        lm.MealType,
				FoodID:          lm.FoodID,
				ServingG:        lm.ServingG,
				DisplayUnit:     lm.DisplayUnit,
				DisplayQuantity: lm.DisplayQuantity,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := upsertByID(tx, &row); err != nil {
				return err
			}
			result.MealEntries++
		}

		for _, lw := range body.WeightEntries {
			var existing weight.Entry
			dberr := tx.Where("date = ?", lw.Date).First(&existing).Error
			row := weight.Entry{
				UUID:      uuid.NewString(),
				Date:      lw.Date,
				WeightKg:  lw.WeightKg,
				Source:    "import",
				Notes:     lw.Notes,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if dberr == nil {
				row.ID = existing.ID
				row.UUID = existing.UUID
			}
			if err := tx.Save(&row).Error; err != nil {
				return errs.NewInternalError(err)
			}
			result.WeightEntries++
		}

		if body.Target != nil {
			for day := 0; day < 7; day++ {
				t := target.DailyTarget{
					DayOfWeek:  day,
					Calories:   body.Target.Calories,
					ProteinPct: body.Target.ProteinPct,
					CarbsPct:   body.Target.CarbsPct,
					FatPct:     body.Target.FatPct,
					UpdatedAt:  now,
				}
				if err := target.NewRepository(tx).Upsert(t); err != nil {
					return err
				}
				result.Targets++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, lr := range body.Recipes {
		ingredients := make([]recipe.CreateIngredientRequest, 0, len(lr.Ingredients))
		for _, li := range lr.Ingredients {
			ingredients = append(ingredients, recipe.CreateIngredientRequest{FoodID: li.FoodID, QuantityG: li.QuantityG})
		}
		if _, err := s.recipes.Create(recipe.CreateRecipeRequest{Name: lr.Name, Portions: lr.Portions, Ingredients: ingredients}); err != nil {
			return nil, err
		}
		result.RecipeIngredients += len(lr.Ingredients)
		result.Recipes++
	}

	return result, nil
}

// upsertByID inserts row, or replaces it in place if its primary key
// already exists, the ID-preserving semantics legacy import requires,
// expressed as the standard ON CONFLICT DO UPDATE upsert idiom.
func upsertByID(tx *gorm.DB, row interface{}) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignAll(),
	}).Create(row).Error
	if err != nil {
		return errs.NewInternalError(err)
	}
	return nil
}
