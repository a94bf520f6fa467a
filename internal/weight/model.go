package weight

import "time"

// Entry is a single body-weight measurement. Date is the natural key: one
// entry per calendar date, upserted in place on conflict.
type Entry struct {
	ID        uint      `json:"id" gorm:"column:id;primaryKey"`
	UUID      string    `json:"uuid" gorm:"column:uuid;uniqueIndex"`
	Date      string    `json:"date" gorm:"column:date;uniqueIndex;not null"`
	WeightKg  float64   `json:"weight_kg" gorm:"column:weight_kg;not null"`
	Source    string    `json:"source" gorm:"column:source;not null"`
	Notes     *string   `json:"notes,omitempty" gorm:"column:notes"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Entry) TableName() string { return "weight_entries" }

// UpsertEntryRequest is the request body for POST /api/weight.
type UpsertEntryRequest struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
	Notes    *string `json:"notes,omitempty"`
}
