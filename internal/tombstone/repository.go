package tombstone

import (
	"time"

	"gorm.io/gorm"

	"grub-core/internal/errs"
)

// Repository handles database operations for tombstones.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether a tombstone already exists for (uuid, table).
func (r *Repository) Exists(uuid, table string) (bool, error) {
	var count int64
	if err := r.db.Model(&Tombstone{}).Where("uuid = ? AND table_name = ?", uuid, table).Count(&count).Error; err != nil {
		return false, errs.NewInternalError(err)
	}
	return count > 0, nil
}

// Put stores a tombstone idempotently: a second tombstone for the same
// (uuid, table) is a no-op, per the merge rule that a tombstone is
// persisted locally only if not already stored.
func (r *Repository) Put(t Tombstone) error {
	exists, err := r.Exists(t.UUID, t.Table)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := r.db.Create(&t).Error; err != nil {
		return errs.NewInternalError(err)
	}
	return nil
}

// GetSince returns every tombstone with deleted_at strictly after since.
// A zero since means "return all", the full-state delta-extraction path.
func (r *Repository) GetSince(since time.Time) ([]Tombstone, error) {
	q := r.db.Model(&Tombstone{})
	if !since.IsZero() {
		q = q.Where("deleted_at > ?", since)
	}
	var out []Tombstone
	if err := q.Order("deleted_at").Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// GetAll returns every stored tombstone; it is GetSince with a zero
// watermark.
func (r *Repository) GetAll() ([]Tombstone, error) {
	return r.GetSince(time.Time{})
}
