package summary

import (
	"net/http"
	"time"

	"grub-core/internal/common"
	"grub-core/internal/errs"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/target"
	"grub-core/internal/validate"
)

const recentFoodsDefaultLimit = 10

// Service computes the read-only aggregation views over meal entries.
type Service struct {
	meals   *mealentry.Repository
	foods   *food.Repository
	targets *target.Repository
}

func NewService(meals *mealentry.Repository, foods *food.Repository, targets *target.Repository) *Service {
	return &Service{meals: meals, foods: foods, targets: targets}
}

func isNotFound(err error) bool {
	ae, ok := err.(*errs.AppError)
	return ok && ae.StatusCode == http.StatusNotFound
}

// targetForDate returns the configured target for date's weekday, or nil
// if none is set. A missing target is not an error.
func (s *Service) targetForDate(date string) (*target.DailyTarget, error) {
	d, err := validate.ParseCivilDate(date)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid date: " + err.Error())
	}
	dayOfWeek := (int(d.Weekday()) + 6) % 7 // time.Weekday: Sunday=0 -> spec: Monday=0
	t, err := s.targets.GetByDay(dayOfWeek)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// DailySummary groups a date's entries by meal type in canonical order
// (empty groups omitted), computes per-group and whole-day totals, and
// attaches the matching weekday target, if any.
func (s *Service) DailySummary(date string) (*DailySummary, error) {
	entries, err := s.meals.GetByDate(date)
	if err != nil {
		return nil, err
	}
	t, err := s.targetForDate(date)
	if err != nil {
		return nil, err
	}

	byType := make(map[string][]mealentry.WithNutrition, len(common.MealTypeOrder))
	for _, e := range entries {
		byType[e.MealType] = append(byType[e.MealType], e)
	}

	out := &DailySummary{Date: date, Target: t}
	for _, mt := range common.MealTypeOrder {
		group := byType[string(mt)]
		if len(group) == 0 {
			continue
		}
		g := MealGroup{MealType: string(mt), Entries: group}
		for _, e := range group {
			g.Subtotal.add(e.Calories, e.Protein, e.Carbs, e.Fat)
		}
		out.Totals.add(g.Subtotal.Calories, g.Subtotal.Protein, g.Subtotal.Carbs, g.Subtotal.Fat)
		out.Groups = append(out.Groups, g)
	}
	return out, nil
}

// Streak counts consecutive prior days, including today if it has
// entries (else starting from today-1), with at least one meal entry.
// If neither today nor today-1 has entries, the streak is 0.
func (s *Service) Streak(today string) (int, error) {
	d, err := validate.ParseCivilDate(today)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid date: " + err.Error())
	}

	hasEntries := func(date string) (bool, error) {
		entries, err := s.meals.GetByDate(date)
		if err != nil {
			return false, err
		}
		return len(entries) > 0, nil
	}

	todayHas, err := hasEntries(d.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}

	cursor := d
	if !todayHas {
		cursor = d.AddDate(0, 0, -1)
		yesterdayHas, err := hasEntries(cursor.Format("2006-01-02"))
		if err != nil {
			return 0, err
		}
		if !yesterdayHas {
			return 0, nil
		}
	}

	streak := 0
	for {
		has, err := hasEntries(cursor.Format("2006-01-02"))
		if err != nil {
			return 0, err
		}
		if !has {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// CalorieAverage is the arithmetic mean of daily calorie totals across the
// n most recent days ending at today; days with no entries are excluded
// from both the sum and the count.
func (s *Service) CalorieAverage(today string, n int) (float64, error) {
	d, err := validate.ParseCivilDate(today)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid date: " + err.Error())
	}

	var sum float64
	var count int
	cursor := d
	for i := 0; i < n; i++ {
		entries, err := s.meals.GetByDate(cursor.Format("2006-01-02"))
		if err != nil {
			return 0, err
		}
		if len(entries) > 0 {
			var dayCalories float64
			for _, e := range entries {
				dayCalories += e.Calories
			}
			sum += dayCalories
			count++
		}
		cursor = cursor.AddDate(0, 0, -1)
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

// Glance is the compact watch projection for one date: today's totals,
// the matching target's calories/macros and what remains of it, meal
// count, and the current streak.
func (s *Service) Glance(date string) (*WatchGlance, error) {
	summary, err := s.DailySummary(date)
	if err != nil {
		return nil, err
	}
	streak, err := s.Streak(date)
	if err != nil {
		return nil, err
	}

	mealCount := 0
	for _, g := range summary.Groups {
		mealCount += len(g.Entries)
	}

	g := &WatchGlance{
		Date:      date,
		Totals:    summary.Totals,
		Target:    summary.Target,
		MealCount: mealCount,
		Streak:    streak,
	}
	if summary.Target != nil {
		targetMacros := targetMacroGrams(summary.Target)
		g.Remaining = &Macro{
			Calories: summary.Target.Calories - summary.Totals.Calories,
			Protein:  targetMacros.Protein - summary.Totals.Protein,
			Carbs:    targetMacros.Carbs - summary.Totals.Carbs,
			Fat:      targetMacros.Fat - summary.Totals.Fat,
		}
	}
	return g, nil
}

// targetMacroGrams converts a target's percentage-of-calories macro split
// into grams, using the standard 4/4/9 kcal-per-gram constants for
// protein/carbs/fat. A target with no percentages set yields zero macros.
func targetMacroGrams(t *target.DailyTarget) Macro {
	var m Macro
	if t.ProteinPct != nil {
		m.Protein = t.Calories * (*t.ProteinPct / 100) / 4
	}
	if t.CarbsPct != nil {
		m.Carbs = t.Calories * (*t.CarbsPct / 100) / 4
	}
	if t.FatPct != nil {
		m.Fat = t.Calories * (*t.FatPct / 100) / 9
	}
	return m
}

// RecentFoods returns the n most-recently-logged unique foods, each
// annotated with how it was last served and how many times logged.
func (s *Service) RecentFoods(n int) ([]RecentFood, error) {
	if n <= 0 {
		n = recentFoodsDefaultLimit
	}
	stats, err := s.meals.GetRecentFoodsDetailed(n)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(stats))
	for _, st := range stats {
		ids = append(ids, st.FoodID)
	}
	foods, err := s.foods.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*food.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	out := make([]RecentFood, 0, len(stats))
	for _, st := range stats {
		f := byID[st.FoodID]
		rf := RecentFood{
			FoodID:       st.FoodID,
			LastDate:     st.LastDate,
			LastMealType: st.LastMealType,
			LastServingG: st.LastServingG,
			LogCount:     st.LogCount,
		}
		if f != nil {
			rf.FoodName = f.Name
			rf.CaloriesPer100g = f.CaloriesPer100g
		}
		out = append(out, rf)
	}
	return out, nil
}

// QuickLog is the minimal-insert path for POST /api/watch/quick-log: a
// thin wrapper over mealentry.Repository.Create that defaults the date to
// today (UTC) when the caller omits it.
func (s *Service) QuickLog(req QuickLogRequest) (*mealentry.WithNutrition, error) {
	date := ""
	if req.Date != nil {
		date = *req.Date
	} else {
		date = time.Now().UTC().Format("2006-01-02")
	}

	if err := validate.MealEntry(validate.MealEntryInput{
		Date:     date,
		MealType: req.MealType,
		ServingG: req.ServingG,
	}); err != nil {
		return nil, err
	}

	return s.meals.Create(mealentry.CreateEntryRequest{
		Date:     date,
		MealType: req.MealType,
		FoodID:   req.FoodID,
		ServingG: req.ServingG,
	})
}
