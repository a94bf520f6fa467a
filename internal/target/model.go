package target

import "time"

// DailyTarget is the calorie/macro goal for one weekday (Monday=0..Sunday=6).
// Day-of-week is itself the stable identity: no UUID, no ownership.
type DailyTarget struct {
	DayOfWeek  int       `json:"day_of_week" gorm:"column:day_of_week;primaryKey"`
	Calories   float64   `json:"calories" gorm:"column:calories;not null"`
	ProteinPct *float64  `json:"protein_pct,omitempty" gorm:"column:protein_pct"`
	CarbsPct   *float64  `json:"carbs_pct,omitempty" gorm:"column:carbs_pct"`
	FatPct     *float64  `json:"fat_pct,omitempty" gorm:"column:fat_pct"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (DailyTarget) TableName() string { return "targets" }

// SetTargetRequest is the replace-on-write body for PUT /api/targets/{day}.
type SetTargetRequest struct {
	Calories   float64  `json:"calories"`
	ProteinPct *float64 `json:"protein_pct,omitempty"`
	CarbsPct   *float64 `json:"carbs_pct,omitempty"`
	FatPct     *float64 `json:"fat_pct,omitempty"`
}
