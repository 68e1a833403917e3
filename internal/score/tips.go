package score

import (
	"fmt"
	"strconv"
	"strings"
)

// Achievement titles shown at the end of a session.
const (
	MovieTitle        = "Movie Marathon"
	TownTitle         = "You really went to town on that..."
	SportTitle        = "Gym Bro"
	StudyFailureTitle = "Failure"
)

// Earned returns the titles of the bonus achievements that were earned.
func (a Achievements) Earned() []string {
	var out []string
	if a.Movie {
		out = append(out, MovieTitle)
	}
	if a.Town {
		out = append(out, TownTitle)
	}
	if a.Sport {
		out = append(out, SportTitle)
	}
	return out
}

// Tips builds end-of-session hints from the result.
func Tips(res Result) []string {
	var tips []string
	if res.Achievements.StudyFailure {
		tips = append(tips, "You missed a day of study and did not catch up the next day, so you failed the exam.")
	}
	if days := missedDays(res.Missed, func(m Missed) bool { return m.Study }); days != "" {
		tips = append(tips, fmt.Sprintf("You did not study on day %s.", days))
	}
	if days := missedDays(res.Missed, func(m Missed) bool { return m.Meal }); days != "" {
		tips = append(tips, fmt.Sprintf("You did not eat on day %s.", days))
	}
	if days := missedDays(res.Missed, func(m Missed) bool { return m.Recreation }); days != "" {
		tips = append(tips, fmt.Sprintf("You did not relax on day %s.", days))
	}
	if len(res.Missed) > 0 && !res.Achievements.Sport {
		tips = append(tips, "Do some sport every day to earn "+SportTitle+".")
	}
	return tips
}

func missedDays(missed []Missed, pick func(Missed) bool) string {
	var days []string
	for i, m := range missed {
		if pick(m) {
			days = append(days, strconv.Itoa(i+1))
		}
	}
	return strings.Join(days, ", ")
}
