// Package plan replays a week plan file through a session.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/cramweek/internal/model"
	"github.com/verte-zerg/cramweek/internal/session"
)

// ErrTooManyDays is returned when a plan is longer than the session.
var ErrTooManyDays = errors.New("plan has more days than the session")

type fileCost struct {
	Hours  *int `toml:"hours"`
	Energy *int `toml:"energy"`
}

type fileDay struct {
	Activities []string `toml:"activities"`
}

type file struct {
	Player string              `toml:"player"`
	Costs  map[string]fileCost `toml:"costs"`
	Days   []fileDay           `toml:"day"`
}

// Plan is a parsed week plan.
type Plan struct {
	Player string
	Days   [][]model.Activity
	costs  map[model.Activity]model.Cost
}

// Cost returns the cost an activity uses in this plan.
func (p Plan) Cost(a model.Activity) model.Cost {
	if c, ok := p.costs[a]; ok {
		return c
	}
	return model.DefaultCost(a)
}

// Load reads a plan from a TOML file.
func Load(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to open plan: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only plan.
			_ = cerr
		}
	}()
	return Decode(f)
}

// Decode parses a plan from TOML.
func Decode(r io.Reader) (Plan, error) {
	var raw file
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return Plan{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	p := Plan{
		Player: raw.Player,
		Days:   make([][]model.Activity, 0, len(raw.Days)),
		costs:  map[model.Activity]model.Cost{},
	}
	for name, fc := range raw.Costs {
		a, err := model.ParseActivity(name)
		if err != nil {
			return Plan{}, fmt.Errorf("costs: %w", err)
		}
		cost := model.DefaultCost(a)
		if fc.Hours != nil {
			cost.Hours = *fc.Hours
		}
		if fc.Energy != nil {
			cost.Energy = *fc.Energy
		}
		if cost.Hours < 0 || cost.Energy < 0 {
			return Plan{}, fmt.Errorf("costs: %s must not be negative", a)
		}
		p.costs[a] = cost
	}
	for i, d := range raw.Days {
		acts := make([]model.Activity, 0, len(d.Activities))
		for _, name := range d.Activities {
			a, err := model.ParseActivity(name)
			if err != nil {
				return Plan{}, fmt.Errorf("day %d: %w", i+1, err)
			}
			acts = append(acts, a)
		}
		p.Days = append(p.Days, acts)
	}
	return p, nil
}

// Rejection records a planned activity the day's budget could not cover.
type Rejection struct {
	Day             int
	Activity        model.Activity
	Cost            model.Cost
	HoursRemaining  int
	EnergyRemaining int
}

// Outcome summarizes a replayed plan.
type Outcome struct {
	Days     []model.Day
	Rejected []Rejection
	Feedback []string
}

// Run plays every planned day through s, then advances through any days the
// plan leaves out, so the session ends finished.
func Run(p Plan, s *session.Session) (Outcome, error) {
	if len(p.Days) > s.DaysRemaining() {
		return Outcome{}, fmt.Errorf("%w: %d planned, %d remaining", ErrTooManyDays, len(p.Days), s.DaysRemaining())
	}
	var out Outcome
	for i, acts := range p.Days {
		for _, a := range acts {
			cost := p.Cost(a)
			if !s.DoActivity(cost.Hours, cost.Energy, a, feedbackFor(a)) {
				out.Rejected = append(out.Rejected, Rejection{
					Day:             i + 1,
					Activity:        a,
					Cost:            cost,
					HoursRemaining:  s.HoursRemaining(),
					EnergyRemaining: s.EnergyRemaining(),
				})
				continue
			}
			out.Feedback = append(out.Feedback, s.Feedback())
			s.ClearFeedback()
		}
		s.AdvanceDay()
	}
	for !s.Done() {
		s.AdvanceDay()
	}
	out.Days = s.Days()
	return out, nil
}

func feedbackFor(a model.Activity) string {
	switch a {
	case model.ActivityStudy:
		return "You studied for a while."
	case model.ActivityMeal:
		return "You ate a meal."
	case model.ActivityMovie:
		return "You watched a movie."
	case model.ActivityTown:
		return "You went into town."
	case model.ActivitySports:
		return "You worked out."
	default:
		return "You took some time to relax."
	}
}
