package food

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grub-core/internal/errs"
)

// GetUpdatedSince returns every food whose updated_at is strictly after
// since, for delta extraction. A zero since means "return all".
func (r *Repository) GetUpdatedSince(since time.Time) ([]Food, error) {
	q := r.db.Model(&Food{})
	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	var out []Food
	if err := q.Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// UpsertByUUID applies a sync-pushed food row: if the UUID is unknown it
// is inserted as-is, preserving the incoming timestamps; otherwise plain
// LWW by updated_at. Returns the local ID the row now has, so the caller
// can extend its uuid to local_id map.
func (r *Repository) UpsertByUUID(incoming Food) (uint, error) {
	var existing Food
	err := r.db.Where("uuid = ?", incoming.UUID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewInternalError(err)
		}
		if err := r.db.Create(&incoming).Error; err != nil {
			return 0, errs.NewInternalError(err)
		}
		return incoming.ID, nil
	}

	if incoming.UpdatedAt.After(existing.UpdatedAt) {
		incoming.ID = existing.ID
		if err := r.db.Save(&incoming).Error; err != nil {
			return 0, errs.NewInternalError(err)
		}
		return incoming.ID, nil
	}
	return existing.ID, nil
}

// DeleteByUUID applies a tombstone for the foods table. A missing food is
// not an error, the tombstone still applies cleanly. The row is only
// deleted when it was last updated before deletedAt; a row touched after
// the tombstone's delete time survives, since the edit is the newer write.
func (r *Repository) DeleteByUUID(id string, deletedAt time.Time) error {
	var existing Food
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
	if err := r.db.Delete(&Food{}, existing.ID).Error; err != nil {
		return errs.NewInternalError(err)
	}
	return nil
}
