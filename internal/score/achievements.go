package score

import "github.com/verte-zerg/cramweek/internal/model"

const (
	movieThreshold = 3
	townThreshold  = 5
	catchUpStudy   = 2
)

// Achievements are the milestones derived from the ordered day list.
type Achievements struct {
	Movie        bool
	Town         bool
	Sport        bool
	StudyFailure bool
}

// Bonuses counts the achievements that add to the exam score.
func (a Achievements) Bonuses() int {
	n := 0
	for _, ok := range []bool{a.Movie, a.Town, a.Sport} {
		if ok {
			n++
		}
	}
	return n
}

// AchievementState is the accumulator folded over the day list.
type AchievementState struct {
	Achievements

	// PendingCatchUp is set after a zero-study day until the next day is judged.
	PendingCatchUp bool
	// MissedStudyDays counts zero-study days seen so far.
	MissedStudyDays int
}

// InitialState is the state before any day: Sport holds until a day without sports.
func InitialState() AchievementState {
	return AchievementState{Achievements: Achievements{Sport: true}}
}

// Step folds one day into the state. Movie and Town only turn on, Sport only
// turns off, and a study failure is permanent.
func (r Rules) Step(s AchievementState, d model.Day) AchievementState {
	if d.Count(model.ActivityMovie) >= movieThreshold {
		s.Movie = true
	}
	if d.Count(model.ActivityTown) >= townThreshold {
		s.Town = true
	}
	if d.Count(model.ActivitySports) == 0 {
		s.Sport = false
	}

	study := d.CategoryCount(model.Study)
	switch r.StudyFailure {
	case SecondMiss:
		if study == 0 {
			s.MissedStudyDays++
			if s.MissedStudyDays >= 2 {
				s.StudyFailure = true
			}
		}
	default:
		if s.PendingCatchUp {
			if study < catchUpStudy {
				s.StudyFailure = true
			} else {
				s.PendingCatchUp = false
			}
		}
		if study == 0 && !s.PendingCatchUp {
			if r.StudyFailure == Legacy && s.MissedStudyDays > 0 {
				s.StudyFailure = true
			}
			s.MissedStudyDays++
			s.PendingCatchUp = true
		}
	}
	return s
}

// Achievements folds Step over days in order.
func (r Rules) Achievements(days []model.Day) Achievements {
	s := InitialState()
	for _, d := range days {
		s = r.Step(s, d)
	}
	return s.Achievements
}

// CalculateAchievements scans days under DefaultRules.
func CalculateAchievements(days []model.Day) Achievements {
	return DefaultRules().Achievements(days)
}
