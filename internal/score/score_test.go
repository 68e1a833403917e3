package score

import (
	"testing"

	"github.com/verte-zerg/cramweek/internal/model"
)

func day(study, meal, recreation int) model.Day {
	return model.NewDay(map[model.Activity]int{
		model.ActivityStudy:      study,
		model.ActivityMeal:       meal,
		model.ActivityRecreation: recreation,
	})
}

func week(d model.Day) []model.Day {
	days := make([]model.Day, 7)
	for i := range days {
		days[i] = d
	}
	return days
}

func TestStudyCurveSteps(t *testing.T) {
	rules := DefaultRules()
	for n := 1; n <= 12; n++ {
		step := rules.Study.Points(n) - rules.Study.Points(n-1)
		want := 10
		if n > 8 {
			want = -5
		}
		if step != want {
			t.Fatalf("study unit %d: expected %+d, got %+d", n, want, step)
		}
	}
	for n := 2; n <= 8; n++ {
		if diff := DayScore(n, 3, 5) - DayScore(n-1, 3, 5); diff != 10 {
			t.Fatalf("day score step at %d: expected 10, got %d", n, diff)
		}
	}
}

func TestDayScore(t *testing.T) {
	tests := []struct {
		name                    string
		study, meal, recreation int
		want                    int
	}{
		{"zero study penalty", 0, 3, 5, HeavyPenalties.Study + 16*3 + 8*5},
		{"max day", 8, 3, 5, MaxDayScore},
		{"balanced", 5, 3, 3, 50 + 48 + 24},
		{"over studied", 10, 3, 5, 80 - 10 + 48 + 40},
		{"over eaten", 8, 5, 5, 80 + 48 - 10 + 40},
		{"extra recreation still positive", 8, 3, 7, 80 + 48 + 40 + 8},
		{"nothing done", 0, 0, 0, -75 - 50 - 30},
	}
	for _, tt := range tests {
		if got := DayScore(tt.study, tt.meal, tt.recreation); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestLightPenalties(t *testing.T) {
	rules := NewRules(LightPenalties, CatchUp, OnScore)
	if got := rules.DayScore(0, 0, 0); got != -20 {
		t.Fatalf("expected -20, got %d", got)
	}
	if got := rules.DayScore(1, 0, 1); got != 10-5+8 {
		t.Fatalf("expected 13, got %d", got)
	}
}

func TestRecreationZeroTrigger(t *testing.T) {
	cancelling := Curve{Unit: 8, Excess: -8, Threshold: 1, ZeroPenalty: -30}

	onScore := DefaultRules()
	onScore.Recreation = cancelling
	if got := onScore.DayScore(8, 3, 2); got != 80+48-30 {
		t.Fatalf("score trigger: expected penalty on cancelled points, got %d", got)
	}

	onCount := onScore
	onCount.RecreationZero = OnCount
	if got := onCount.DayScore(8, 3, 2); got != 80+48 {
		t.Fatalf("count trigger: expected no penalty, got %d", got)
	}
	if got := onCount.DayScore(8, 3, 0); got != 80+48-30 {
		t.Fatalf("count trigger: expected penalty for zero count, got %d", got)
	}
}

func TestNormalizedDayScore(t *testing.T) {
	tests := []struct{ in, want int }{
		{168, 100},
		{122, 73},
		{42, 25},
		{0, 0},
		{1, 1},
		{-155, -92},
	}
	for _, tt := range tests {
		if got := NormalizedDayScore(tt.in); got != tt.want {
			t.Fatalf("normalize %d: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestExamScoreMaxWeek(t *testing.T) {
	if got := ExamScore(week(day(8, 3, 5))); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}

	sporty := model.NewDay(map[model.Activity]int{
		model.ActivityStudy:  8,
		model.ActivityMeal:   3,
		model.ActivitySports: 5,
	})
	res := Evaluate(week(sporty))
	if !res.Achievements.Sport {
		t.Fatalf("expected sport achievement")
	}
	if res.Score != 100 {
		t.Fatalf("expected bonus to clamp at 100, got %d", res.Score)
	}
}

func TestExamScoreBalancedWeek(t *testing.T) {
	res := Evaluate(week(day(5, 3, 3)))
	for i, n := range res.Normalized {
		if n != 73 {
			t.Fatalf("day %d: expected normalized 73, got %d", i+1, n)
		}
	}
	if res.Score != 73 {
		t.Fatalf("expected 73, got %d", res.Score)
	}
}

func TestExamScoreAchievementBonuses(t *testing.T) {
	days := week(day(5, 3, 3))
	days[0] = model.NewDay(map[model.Activity]int{
		model.ActivityStudy: 5,
		model.ActivityMeal:  3,
		model.ActivityMovie: 3,
	})
	days[1] = model.NewDay(map[model.Activity]int{
		model.ActivityStudy: 5,
		model.ActivityMeal:  3,
		model.ActivityTown:  5,
	})
	res := Evaluate(days)
	if !res.Achievements.Movie || !res.Achievements.Town || res.Achievements.Sport {
		t.Fatalf("unexpected achievements: %+v", res.Achievements)
	}
	// Day two has 5 recreation: 50+48+40 = 138 -> 83.
	if res.Normalized[1] != 83 {
		t.Fatalf("expected normalized 83 for day two, got %d", res.Normalized[1])
	}
	// (6*73 + 83) / 7 = 74.43, plus two bonuses.
	if res.Score != 84 {
		t.Fatalf("expected 84, got %d", res.Score)
	}
}

func TestExamScoreStudyFailureForcesZero(t *testing.T) {
	days := week(model.NewDay(map[model.Activity]int{
		model.ActivityStudy:  8,
		model.ActivityMeal:   3,
		model.ActivitySports: 5,
	}))
	days[2] = model.NewDay(map[model.Activity]int{model.ActivityMeal: 3, model.ActivitySports: 1})
	days[3] = model.NewDay(map[model.Activity]int{model.ActivityStudy: 1, model.ActivitySports: 1})

	res := Evaluate(days)
	if !res.Achievements.StudyFailure {
		t.Fatalf("expected study failure")
	}
	if res.Score != 0 {
		t.Fatalf("expected 0, got %d", res.Score)
	}
}

func TestExamScoreClampsNegative(t *testing.T) {
	rules := NewRules(HeavyPenalties, CatchUp, OnScore)
	days := week(day(1, 0, 0))
	if got := rules.ExamScore(days); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestExamScoreEmptySessionKeepsSportBonus(t *testing.T) {
	if got := ExamScore(nil); got != AchievementBonus {
		t.Fatalf("expected %d, got %d", AchievementBonus, got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{2.5, 3},
		{2.4999, 2},
		{99.5, 100},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Fatalf("round %v: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestMissedActivities(t *testing.T) {
	days := []model.Day{
		day(0, 1, 0),
		day(2, 0, 1),
		model.NewDay(map[model.Activity]int{model.ActivityStudy: 1, model.ActivityMeal: 1, model.ActivityTown: 1}),
	}
	missed := MissedActivities(days)
	if !missed[0].Study || missed[0].Meal || !missed[0].Recreation {
		t.Fatalf("unexpected day 1: %+v", missed[0])
	}
	if missed[1].Study || !missed[1].Meal || missed[1].Recreation {
		t.Fatalf("unexpected day 2: %+v", missed[1])
	}
	if missed[2].Any() {
		t.Fatalf("expected nothing missed on day 3: %+v", missed[2])
	}
}

func TestTips(t *testing.T) {
	days := []model.Day{day(0, 1, 1), day(1, 0, 1)}
	tips := Tips(Evaluate(days))
	want := []string{
		"You missed a day of study and did not catch up the next day, so you failed the exam.",
		"You did not study on day 1.",
		"You did not eat on day 2.",
		"Do some sport every day to earn " + SportTitle + ".",
	}
	if len(tips) != len(want) {
		t.Fatalf("expected %d tips, got %d: %v", len(want), len(tips), tips)
	}
	for i := range want {
		if tips[i] != want[i] {
			t.Fatalf("tip %d: expected %q, got %q", i, want[i], tips[i])
		}
	}
}

func TestParseRules(t *testing.T) {
	if r, err := ParseStudyFailureRule("Second-Miss"); err != nil || r != SecondMiss {
		t.Fatalf("expected second-miss, got %v (%v)", r, err)
	}
	if _, err := ParseStudyFailureRule("never"); err == nil {
		t.Fatalf("expected error for unknown rule")
	}
	if tr, err := ParseRecreationZeroTrigger("count"); err != nil || tr != OnCount {
		t.Fatalf("expected count trigger, got %v (%v)", tr, err)
	}
	if p, err := ParsePenalties("light"); err != nil || p != LightPenalties {
		t.Fatalf("expected light penalties, got %v (%v)", p, err)
	}
	if _, err := ParsePenalties("brutal"); err == nil {
		t.Fatalf("expected error for unknown penalties")
	}
}
