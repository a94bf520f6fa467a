package target

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grub-core/internal/errs"
)

// Repository handles database operations for per-weekday daily targets.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Set replaces the target for a weekday: insert if absent, overwrite in
// full if present.
func (r *Repository) Set(dayOfWeek int, req SetTargetRequest) (*DailyTarget, error) {
	t := &DailyTarget{
		DayOfWeek:  dayOfWeek,
		Calories:   req.Calories,
		ProteinPct: req.ProteinPct,
		CarbsPct:   req.CarbsPct,
		FatPct:     req.FatPct,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := r.db.Save(t).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return t, nil
}

// GetByDay retrieves the target for one weekday.
func (r *Repository) GetByDay(dayOfWeek int) (*DailyTarget, error) {
	var t DailyTarget
	if err := r.db.First(&t, "day_of_week = ?", dayOfWeek).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("target", dayOfWeek)
		}
		return nil, errs.NewInternalError(err)
	}
	return &t, nil
}

// GetAll lists every configured target, ordered by weekday.
func (r *Repository) GetAll() ([]DailyTarget, error) {
	var targets []DailyTarget
	if err := r.db.Order("day_of_week").Find(&targets).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return targets, nil
}

// DeleteDay removes the target for one weekday.
func (r *Repository) DeleteDay(dayOfWeek int) error {
	result := r.db.Delete(&DailyTarget{}, "day_of_week = ?", dayOfWeek)
	if result.Error != nil {
		return errs.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("target", dayOfWeek)
	}
	return nil
}

// DeleteAll clears every configured target.
func (r *Repository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&DailyTarget{}).Error; err != nil {
		return errs.NewInternalError(err)
	}
	return nil
}

// GetUpdatedSince returns every target whose updated_at is strictly after
// since, for delta extraction. A zero since means "return all".
func (r *Repository) GetUpdatedSince(since time.Time) ([]DailyTarget, error) {
	q := r.db.Model(&DailyTarget{})
	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	var out []DailyTarget
	if err := q.Order("day_of_week").Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// Upsert is the sync-merge entry point: LWW by updated_at, incoming wins
// when strictly newer or local has no recorded timestamp.
func (r *Repository) Upsert(incoming DailyTarget) error {
	var existing DailyTarget
	err := r.db.First(&existing, "day_of_week = ?", incoming.DayOfWeek).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewInternalError(err)
		}
		if err := r.db.Create(&incoming).Error; err != nil {
			return errs.NewInternalError(err)
		}
		return nil
	}

	if existing.UpdatedAt.IsZero() || incoming.UpdatedAt.After(existing.UpdatedAt) {
		if err := r.db.Save(&incoming).Error; err != nil {
			return errs.NewInternalError(err)
		}
	}
	return nil
}
