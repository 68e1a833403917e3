package score

import (
	"math"

	"github.com/verte-zerg/cramweek/internal/model"
)

const (
	// MaxDayScore is the best possible day: 8 study, 3 meals, 5 recreation.
	MaxDayScore = 168
	// MinDayScore is the bottom of the normalization range.
	MinDayScore = 0

	// AchievementBonus is added to the exam score for each achievement earned.
	AchievementBonus = 5

	// dayWeight assumes a seven day session. Other lengths are over or under weighted.
	dayWeight = 1.0 / 7.0
)

// DayScore scores a day under DefaultRules.
func DayScore(studyCount, mealCount, recreationCount int) int {
	return DefaultRules().DayScore(studyCount, mealCount, recreationCount)
}

// DayScore sums the three category curves. The result may be negative.
func (r Rules) DayScore(studyCount, mealCount, recreationCount int) int {
	study := r.Study.Points(studyCount)
	if studyCount == 0 {
		study = r.Study.ZeroPenalty
	}

	meal := r.Meal.Points(mealCount)
	if mealCount == 0 {
		meal = r.Meal.ZeroPenalty
	}

	recreation := r.Recreation.Points(recreationCount)
	switch r.RecreationZero {
	case OnCount:
		if recreationCount == 0 {
			recreation = r.Recreation.ZeroPenalty
		}
	default:
		if recreation == 0 {
			recreation = r.Recreation.ZeroPenalty
		}
	}
	return study + meal + recreation
}

func (r Rules) scoreDay(d model.Day) int {
	return r.DayScore(d.CategoryCount(model.Study), d.CategoryCount(model.Meal), d.CategoryCount(model.Recreation))
}

// NormalizedDayScore maps a day score onto 0..100 of the theoretical range, rounding up.
// Days below MinDayScore normalize to negative values.
func NormalizedDayScore(dayScore int) int {
	return int(math.Ceil(float64(dayScore-MinDayScore) * 100 / float64(MaxDayScore-MinDayScore)))
}

// ExamScore scores days under DefaultRules.
func ExamScore(days []model.Day) int {
	return DefaultRules().ExamScore(days)
}

// ExamScore weights each normalized day by 1/7, adds achievement bonuses and
// clamps to 0..100. A study failure forces the score to 0.
func (r Rules) ExamScore(days []model.Day) int {
	return r.Evaluate(days).Score
}

// Result is everything the end of a session reports.
type Result struct {
	Score        int
	Achievements Achievements
	DayScores    []int
	Normalized   []int
	Missed       []Missed
}

// Evaluate scores days under DefaultRules.
func Evaluate(days []model.Day) Result {
	return DefaultRules().Evaluate(days)
}

// Evaluate computes the exam score together with the per-day breakdown.
func (r Rules) Evaluate(days []model.Day) Result {
	res := Result{
		DayScores:  make([]int, len(days)),
		Normalized: make([]int, len(days)),
	}
	var total float64
	for i, d := range days {
		ds := r.scoreDay(d)
		norm := NormalizedDayScore(ds)
		res.DayScores[i] = ds
		res.Normalized[i] = norm
		total += float64(norm) * dayWeight
	}

	res.Achievements = r.Achievements(days)
	total += float64(AchievementBonus * res.Achievements.Bonuses())
	if res.Achievements.StudyFailure {
		total = 0
	}
	res.Score = roundHalfUp(clamp(total, 0, 100))
	res.Missed = MissedActivities(days)
	return res
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Missed flags the categories a day skipped entirely.
type Missed struct {
	Study      bool
	Meal       bool
	Recreation bool
}

// Any reports whether the day skipped at least one category.
func (m Missed) Any() bool {
	return m.Study || m.Meal || m.Recreation
}

// MissedActivities lists, per day, which categories were never done.
func MissedActivities(days []model.Day) []Missed {
	out := make([]Missed, len(days))
	for i, d := range days {
		out[i] = Missed{
			Study:      d.CategoryCount(model.Study) == 0,
			Meal:       d.CategoryCount(model.Meal) == 0,
			Recreation: d.CategoryCount(model.Recreation) == 0,
		}
	}
	return out
}
