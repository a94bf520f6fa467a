package mealentry

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grub-core/internal/errs"
)

// GetUpdatedSince returns every meal entry whose updated_at is strictly
// after since, for delta extraction. A zero since means "return all".
func (r *Repository) GetUpdatedSince(since time.Time) ([]Entry, error) {
	q := r.db.Model(&Entry{})
	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	var out []Entry
	if err := q.Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// GetByUUID retrieves a raw entry (no nutrition join) by shadow identity.
func (r *Repository) GetByUUID(id string) (*Entry, error) {
	var e Entry
	if err := r.db.Where("uuid = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.NewInternalError(err)
	}
	return &e, nil
}

// DeleteByUUID applies a tombstone for the meal_entries table. A missing
// entry is not an error, the tombstone still applies cleanly. The row is
// only deleted when it was last updated before deletedAt.
func (r *Repository) DeleteByUUID(id string, deletedAt time.Time) error {
	var existing Entry
	err := r.db.Where("uuid = ?", id).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return errs.NewInternalError(err)
	}
	if !existing.UpdatedAt.Before(deletedAt) {
		return nil
	}
	if err := r.db.Delete(&Entry{}, existing.ID).Error; err != nil {
		return errs.NewInternalError(err)
	}
	return nil
}
