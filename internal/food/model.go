package food

import "time"

// Food is the catalog unit: name (non-empty), optional brand/barcode,
// per-100g macros, and the shadow uuid/updated_at pair every
// sync-participating row carries.
type Food struct {
	ID              uint      `json:"id" gorm:"column:id;primaryKey"`
	UUID            string    `json:"uuid" gorm:"column:uuid;uniqueIndex"`
	Name            string    `json:"name" gorm:"column:name;not null"`
	Brand           *string   `json:"brand,omitempty" gorm:"column:brand"`
	Barcode         *string   `json:"barcode,omitempty" gorm:"column:barcode;uniqueIndex"`
	CaloriesPer100g float64   `json:"calories_per_100g" gorm:"column:calories_per_100g;not null"`
	ProteinPer100g  *float64  `json:"protein_per_100g,omitempty" gorm:"column:protein_per_100g"`
	CarbsPer100g    *float64  `json:"carbs_per_100g,omitempty" gorm:"column:carbs_per_100g"`
	FatPer100g      *float64  `json:"fat_per_100g,omitempty" gorm:"column:fat_per_100g"`
	DefaultServingG *float64  `json:"default_serving_g,omitempty" gorm:"column:default_serving_g"`
	Source          string    `json:"source" gorm:"column:source;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Food) TableName() string { return "foods" }

// CreateFoodRequest is the REST/provider input shape for a new food.
type CreateFoodRequest struct {
	Name            string   `json:"name"`
	Brand           *string  `json:"brand,omitempty"`
	Barcode         *string  `json:"barcode,omitempty"`
	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  *float64 `json:"protein_per_100g,omitempty"`
	CarbsPer100g    *float64 `json:"carbs_per_100g,omitempty"`
	FatPer100g      *float64 `json:"fat_per_100g,omitempty"`
	DefaultServingG *float64 `json:"default_serving_g,omitempty"`
}
