package tombstone

import "time"

// Tombstone is a deletion record: the UUID of the deleted entity, the
// table it lived in (restricted to common.TombstoneTables), and when the
// deletion happened. Composite-keyed by (uuid, table_name): the same
// UUID never appears twice in the same table's tombstone set.
type Tombstone struct {
	UUID      string    `json:"uuid" gorm:"column:uuid;primaryKey"`
	Table     string    `json:"table_name" gorm:"column:table_name;primaryKey"`
	DeletedAt time.Time `json:"deleted_at" gorm:"column:deleted_at;not null"`
}

func (Tombstone) TableName() string { return "tombstones" }
