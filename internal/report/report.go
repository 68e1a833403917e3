// Package report renders session results and leaderboards as text.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/cramweek/internal/model"
	"github.com/verte-zerg/cramweek/internal/score"
	"github.com/verte-zerg/cramweek/internal/store"
)

const sparkChars = " .:-=+*#%@"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	earnedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	failureStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
	highlightStyle = lipgloss.NewStyle().Bold(true)
)

// ShouldUseColor reports whether w is a terminal that accepts styling.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func render(style lipgloss.Style, useColor bool, s string) string {
	if !useColor {
		return s
	}
	return style.Render(s)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if minVal == maxVal {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := float64(v-minVal) / float64(maxVal-minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderDays prints the per-day breakdown of a session.
func RenderDays(w io.Writer, days []model.Day, res score.Result, useColor bool) error {
	if _, err := fmt.Fprintln(w, render(titleStyle, useColor, "Days")); err != nil {
		return err
	}
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, "No days played.")
		return err
	}
	headers := []string{"Day"}
	for _, c := range model.Categories {
		name := c.String()
		headers = append(headers, strings.ToUpper(name[:1])+name[1:])
	}
	headers = append(headers, "Score", "Normalized")
	rows := make([][]string, 0, len(days))
	for i, d := range days {
		row := []string{strconv.Itoa(i + 1)}
		for _, c := range model.Categories {
			row = append(row, strconv.Itoa(d.CategoryCount(c)))
		}
		rows = append(rows, append(row, strconv.Itoa(res.DayScores[i]), strconv.Itoa(res.Normalized[i])))
	}
	rightAlign := make(map[int]bool, len(headers))
	for i := range headers {
		rightAlign[i] = true
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Trend: [%s]\n\n", Sparkline(res.Normalized)); err != nil {
		return err
	}
	return nil
}

// RenderResult prints the exam score, achievements and tips.
func RenderResult(w io.Writer, res score.Result, useColor bool) error {
	if _, err := fmt.Fprintf(w, "%s %d/100\n", render(titleStyle, useColor, "Exam score:"), res.Score); err != nil {
		return err
	}
	if res.Achievements.StudyFailure {
		if _, err := fmt.Fprintln(w, render(failureStyle, useColor, "Achievement: "+score.StudyFailureTitle)); err != nil {
			return err
		}
	}
	for _, title := range res.Achievements.Earned() {
		line := fmt.Sprintf("Achievement: %s (+%d)", title, score.AchievementBonus)
		if _, err := fmt.Fprintln(w, render(earnedStyle, useColor, line)); err != nil {
			return err
		}
	}
	tips := score.Tips(res)
	if len(tips) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, render(titleStyle, useColor, "Tips")); err != nil {
		return err
	}
	for _, tip := range tips {
		if _, err := fmt.Fprintf(w, "- %s\n", tip); err != nil {
			return err
		}
	}
	return nil
}

// RenderLeaderboard prints the ranking. The first entry equal to highlight is marked.
func RenderLeaderboard(w io.Writer, entries []store.Entry, highlight *store.Entry, useColor bool) error {
	if _, err := fmt.Fprintln(w, render(titleStyle, useColor, "Leaderboard")); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet.")
		return err
	}
	headers := []string{"#", "Name", "Score"}
	rows := make([][]string, 0, len(entries))
	marked := -1
	for i, e := range entries {
		if marked < 0 && highlight != nil && e == *highlight {
			marked = i
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Score)})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true})
	for i, line := range lines {
		if marked >= 0 && i-1 == marked {
			line = render(highlightStyle, useColor, line+"  <")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
