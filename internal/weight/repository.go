package weight

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grub-core/internal/common"
	"grub-core/internal/errs"
)

// Repository handles database operations for weight entries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts a new entry for a date or replaces the existing one in
// place; date is the natural key, so there is at most one entry per day.
func (r *Repository) Upsert(req UpsertEntryRequest) (*Entry, error) {
	now := time.Now().UTC()
	var existing Entry
	err := r.db.Where("date = ?", req.Date).First(&existing).Error
	if err == nil {
		existing.WeightKg = req.WeightKg
		existing.Notes = req.Notes
		existing.Source = string(common.WeightSourceManual)
		existing.UpdatedAt = now
		if err := r.db.Save(&existing).Error; err != nil {
			return nil, errs.NewInternalError(err)
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewInternalError(err)
	}

	e := &Entry{
		UUID:      uuid.NewString(),
		Date:      req.Date,
		WeightKg:  req.WeightKg,
		Source:    string(common.WeightSourceManual),
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.Create(e).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return e, nil
}

// GetByDate retrieves the entry for a calendar date, returning (nil, nil)
// on miss rather than an error.
func (r *Repository) GetByDate(date string) (*Entry, error) {
	var e Entry
	err := r.db.Where("date = ?", date).First(&e).Error
	if err == nil {
		return &e, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, errs.NewInternalError(err)
}

// GetRange lists entries between start and end (inclusive), ordered by date.
func (r *Repository) GetRange(start, end string) ([]Entry, error) {
	q := r.db.Order("date ASC")
	if start != "" {
		q = q.Where("date >= ?", start)
	}
	if end != "" {
		q = q.Where("date <= ?", end)
	}
	var entries []Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return entries, nil
}

// DeleteByID removes an entry by local ID.
func (r *Repository) DeleteByID(id uint) error {
	result := r.db.Delete(&Entry{}, id)
	if result.Error != nil {
		return errs.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("weight entry", id)
	}
	return nil
}

// GetUpdatedSince returns every weight entry whose updated_at is strictly
// after since, for delta extraction. A zero since means "return all".
func (r *Repository) GetUpdatedSince(since time.Time) ([]Entry, error) {
	q := r.db.Model(&Entry{}).Order("date ASC")
	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	var out []Entry
	if err := q.Find(&out).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}
	return out, nil
}

// MergeIncoming applies a sync-pushed entry keyed by date (natural key):
// newer updated_at wins, insert if the date is absent.
func (r *Repository) MergeIncoming(incoming Entry) error {
	var existing Entry
	err := r.db.Where("date = ?", incoming.Date).First(&existing).Error
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
