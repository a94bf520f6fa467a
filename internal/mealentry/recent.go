package mealentry

import "grub-core/internal/errs"

// RecentFoodStat summarizes one food's logging history for the "recently
// logged" projection: when it was last logged, how it was served then,
// and how many times it has been logged in total.
type RecentFoodStat struct {
	FoodID       uint
	LastDate     string
	LastMealType string
	LastServingG float64
	LogCount     int
}

// GetRecentFoodsDetailed returns the N most-recently-logged distinct foods,
// each annotated with its most recent serving size and meal type and its
// total log count, ordered by (last-logged date DESC, log count DESC),
// the ordering the watch "recent foods" projection requires.
func (r *Repository) GetRecentFoodsDetailed(limit int) ([]RecentFoodStat, error) {
	var entries []Entry
	if err := r.db.Order("date DESC, created_at DESC").Find(&entries).Error; err != nil {
		return nil, errs.NewInternalError(err)
	}

	order := make([]uint, 0)
	byFood := make(map[uint]*RecentFoodStat)
	for _, e := range entries {
		stat, ok := byFood[e.FoodID]
		if !ok {
			stat = &RecentFoodStat{
				FoodID:       e.FoodID,
				LastDate:     e.Date,
				LastMealType: e.MealType,
				LastServingG: e.ServingG,
			}
			byFood[e.FoodID] = stat
			order = append(order, e.FoodID)
		}
		stat.LogCount++
	}

	// order already reflects (date DESC, created_at DESC) for first sight
	// of each food, which is exactly the required tie-break on log count
	// only within foods sharing the same last-logged date; a stable sort
	// by count alone would violate the date-first ordering, so we only
	// need to break remaining count ties among equal dates.
	out := make([]RecentFoodStat, 0, len(order))
	for _, id := range order {
		out = append(out, *byFood[id])
	}
	sortByDateThenCount(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortByDateThenCount(stats []RecentFoodStat) {
	for i := 1; i < len(stats); i++ {
		j := i
		for j > 0 && less(stats[j], stats[j-1]) {
			stats[j], stats[j-1] = stats[j-1], stats[j]
			j--
		}
	}
}

func less(a, b RecentFoodStat) bool {
	if a.LastDate != b.LastDate {
		return a.LastDate > b.LastDate
	}
	return a.LogCount > b.LogCount
}
