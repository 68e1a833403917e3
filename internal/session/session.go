// Package session tracks the mutable state of one playthrough.
package session

import (
	"github.com/google/uuid"

	"github.com/verte-zerg/cramweek/internal/model"
)

// Limits bound a session: its length and the daily resource pools.
type Limits struct {
	Days      int
	MaxHours  int
	MaxEnergy int
}

// DefaultLimits returns a seven day session with 16 hours and 100 energy per day.
func DefaultLimits() Limits {
	return Limits{Days: 7, MaxHours: 16, MaxEnergy: 100}
}

// Session holds the remaining days, today's resource pools, and the day records.
// It is not safe for concurrent use.
type Session struct {
	id     uuid.UUID
	limits Limits

	daysRemaining   int
	hoursRemaining  int
	energyRemaining int

	days     []model.Day
	current  model.Day
	feedback string
}

// New starts a session with full resource pools and an empty first day.
func New(limits Limits) *Session {
	return &Session{
		id:              uuid.New(),
		limits:          limits,
		daysRemaining:   limits.Days,
		hoursRemaining:  limits.MaxHours,
		energyRemaining: limits.MaxEnergy,
		days:            make([]model.Day, 0, max(limits.Days, 0)),
	}
}

// ID identifies the session in logs and reports.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Limits returns the limits the session was created with.
func (s *Session) Limits() Limits {
	return s.limits
}

// DoActivity spends hours and energy on an activity for the current day.
// It returns false and leaves the session untouched when either pool is too small.
func (s *Session) DoActivity(hours, energy int, activity model.Activity, text string) bool {
	if hours < 0 || energy < 0 || !activity.Valid() {
		return false
	}
	if hours > s.hoursRemaining || energy > s.energyRemaining {
		return false
	}
	s.hoursRemaining -= hours
	s.energyRemaining -= energy
	s.current.Add(activity)
	s.feedback = text
	return true
}

// AdvanceDay freezes the current day and starts the next one with full pools.
// It returns false once no days remain.
func (s *Session) AdvanceDay() bool {
	if s.daysRemaining <= 0 {
		return false
	}
	s.days = append(s.days, s.current)
	s.daysRemaining--
	s.hoursRemaining = s.limits.MaxHours
	s.energyRemaining = s.limits.MaxEnergy
	s.current = model.Day{}
	return true
}

// TotalActivityCount sums a category across finished days and the current day.
func (s *Session) TotalActivityCount(c model.Category) int {
	total := s.current.CategoryCount(c)
	for _, d := range s.days {
		total += d.CategoryCount(c)
	}
	return total
}

// TotalFor sums a single activity across finished days and the current day.
func (s *Session) TotalFor(a model.Activity) int {
	total := s.current.Count(a)
	for _, d := range s.days {
		total += d.Count(a)
	}
	return total
}

// Days returns a copy of the finished day records in order.
func (s *Session) Days() []model.Day {
	out := make([]model.Day, len(s.days))
	copy(out, s.days)
	return out
}

// CurrentDay returns a snapshot of the in-progress day.
func (s *Session) CurrentDay() model.Day {
	return s.current
}

// DaysRemaining returns the number of days left, including the current one.
func (s *Session) DaysRemaining() int { return s.daysRemaining }

// HoursRemaining returns the hours left in the current day.
func (s *Session) HoursRemaining() int { return s.hoursRemaining }

// EnergyRemaining returns the energy left in the current day.
func (s *Session) EnergyRemaining() int { return s.energyRemaining }

// Done reports whether every day of the session has been played.
func (s *Session) Done() bool {
	return s.daysRemaining <= 0
}

// Feedback returns the text of the last successful activity.
func (s *Session) Feedback() string {
	return s.feedback
}

// ClearFeedback drops the transient feedback message.
func (s *Session) ClearFeedback() {
	s.feedback = ""
}
