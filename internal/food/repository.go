package food

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grub-core/internal/common"
	"grub-core/internal/errs"
)

const searchLimit = 20

// Repository handles database operations for the food catalog.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create allocates a UUID, stamps created_at = updated_at = now, and
// inserts the row. Rejects a non-empty barcode that already belongs to
// another food before touching the database, and also fails on the
// underlying unique-index violation as a backstop against races.
func (r *Repository) Create(req CreateFoodRequest) (*Food, error) {
	if req.Barcode != nil && *req.Barcode != "" {
		var existing Food
		err := r.db.Where("barcode = ?", *req.Barcode).First(&existing).Error
		if err == nil {
			return nil, errs.NewBadRequestError(fmt.Sprintf("barcode %q is already in use", *req.Barcode))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewInternalError(err)
		}
	}

	now := time.Now().UTC()
	f := &Food{
		UUID:            uuid.NewString(),
		Name:            req.Name,
		Brand:           req.Brand,
		Barcode:         req.Barcode,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinPer100g:  req.ProteinPer100g,
		CarbsPer100g:    req.CarbsPer100g,
		FatPer100g:      req.FatPer100g,
		DefaultServingG: req.DefaultServingG,
		Source:          string(common.FoodSourceUser),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.db.Create(f).Error; err != nil {
		return nil, errs.NewBadRequestError(fmt.Sprintf("failed to create food: %v", err))
	}
	return f, nil
}

// CreateWithSource is Create generalized to any source tag, used by the
// recipe materializer (source="recipe") and the provider orchestrator
// (source="external").
func (r *Repository) CreateWithSource(req CreateFoodRequest, source common.FoodSource) (*Food, error) {
	now := time.Now().UTC()
	f := &Food{
		UUID:            uuid.NewString(),
		Name:            req.Name,
		Brand:           req.Brand,
		Barcode:         req.Barcode,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinPer100g:  req.ProteinPer100g,
		CarbsPer100g:    req.CarbsPer100g,
		FatPer100g:      req.FatPer100g,
		DefaultServingG: req.DefaultServingG,
		Source:          string(source),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.db.Create(f).Error; err != nil {
		return nil, errs.NewBadRequestError(fmt.Sprintf("failed to create food: %v", err))
	}
	return f, nil
}

// UpsertByBarcode returns the existing row unchanged when a food with the
// given barcode already exists; otherwise it inserts. Idempotent, so
// repeated external-catalog caching never duplicates rows.
func (r *Repository) UpsertByBarcode(req CreateFoodRequest, source common.FoodSource) (*Food, error) {
	if req.Barcode != nil && *req.Barcode != "" {
		var existing Food
		err := r.db.Where("barcode = ?", *req.Barcode).First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewInternalError(err)
		}
	}
	return r.CreateWithSource(req, source)
}

// GetByID retrieves a food by local surrogate key.
func (r *Repository) GetByID(id uint) (*Food, error) {
	var f Food
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("food", id)
		}
		return nil, errs.NewInternalError(err)
	}
	return &f, nil
}

// GetByUUID retrieves a food by its stable shadow identity.
func (r *Repository) GetByUUID(id string) (*Food, error) {
	var f Food
	if err := r.db.Where("uuid = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("food", id)
		}
		return nil, errs.NewInternalError(err)
	}
	return &f, nil
}

// GetByBarcode is the local-cache lookup step of the provider's barcode flow.
func (r *Repository) GetByBarcode(barcode string) (*Food, error) {
	var f Food
	if err := r.db.Where("barcode = ?", barcode).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("food", barcode)
		}
		return nil, errs.NewInternalError(err)
	}
	return &f, nil
}

// GetByIDs batch-fetches foods by local ID, used by the recipe
// materializer to avoid N+1 lookups per ingredient.
func (r *Repository) GetByIDs(ids []uint) ([]*Food, error) {
	if len(ids) == 0 {
		return []*Food{}, nil
	}
	var foods []*Food
	if err := r.db.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return foods, nil
}

// Search performs case-insensitive LIKE matching on name and brand, with
// SQL wildcard/escape characters escaped out of user input, ordered by
// name, hard-limited to 20 results.
func (r *Repository) Search(query string) ([]Food, error) {
	pattern := "%" + escapeLikePattern(query) + "%"
	var foods []Food
	err := r.db.
		Where("name LIKE ? ESCAPE '\\' COLLATE NOCASE OR brand LIKE ? ESCAPE '\\' COLLATE NOCASE", pattern, pattern).
		Order("name").
		Limit(searchLimit).
		Find(&foods).Error
	if err != nil {
		return nil, errs.NewInternalError(err)
	}
	return foods, nil
}

// All lists the full catalog, newest first.
func (r *Repository) All() ([]Food, error) {
	var foods []Food
	if err := r.db.Order("created_at DESC").Find(&foods).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return foods, nil
}

// Save persists mutations to an existing row, bumping updated_at.
func (r *Repository) Save(f *Food) error {
	f.UpdatedAt = time.Now().UTC()
	if err := r.db.Save(f).Error; err != nil {
		return errs.NewInternalError(err)
	}
	return nil
}

// Delete removes a food row by local ID. It writes no tombstone.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&Food{}, id)
	if result.Error != nil {
		return errs.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("food", id)
	}
	return nil
}

// escapeLikePattern escapes SQLite LIKE metacharacters (%, _) and the
// escape character itself so user input can never widen the match.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
