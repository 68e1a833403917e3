// Package score turns finished day records into an exam score and achievements.
package score

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRule is returned when a rule name cannot be resolved.
var ErrUnknownRule = errors.New("unknown scoring rule")

// Curve is a diminishing-return curve for one category.
// Each unit up to Threshold is worth Unit points, each unit beyond it Excess points.
type Curve struct {
	Unit        int
	Excess      int
	Threshold   int
	ZeroPenalty int
}

// Points returns the curve value for count units, before any zero penalty.
func (c Curve) Points(count int) int {
	if count <= 0 {
		return 0
	}
	if count <= c.Threshold {
		return count * c.Unit
	}
	return c.Threshold*c.Unit + (count-c.Threshold)*c.Excess
}

// Penalties are the flat scores used when a category scores nothing.
type Penalties struct {
	Study      int
	Meal       int
	Recreation int
}

var (
	// HeavyPenalties punish a skipped category hard.
	HeavyPenalties = Penalties{Study: -75, Meal: -50, Recreation: -30}
	// LightPenalties only nudge the player.
	LightPenalties = Penalties{Study: -10, Meal: -5, Recreation: -5}
)

// StudyFailureRule selects how a missed study day turns into a failed session.
type StudyFailureRule int

const (
	// CatchUp fails when a zero-study day is followed by a day with fewer than two study sessions.
	CatchUp StudyFailureRule = iota
	// SecondMiss fails on the second zero-study day anywhere in the session.
	SecondMiss
	// Legacy applies both checks, as the shipped game did.
	Legacy
)

func (r StudyFailureRule) String() string {
	switch r {
	case CatchUp:
		return "catch-up"
	case SecondMiss:
		return "second-miss"
	case Legacy:
		return "legacy"
	default:
		return fmt.Sprintf("study-failure(%d)", int(r))
	}
}

// ParseStudyFailureRule resolves a rule name such as "catch-up".
func ParseStudyFailureRule(name string) (StudyFailureRule, error) {
	for _, r := range []StudyFailureRule{CatchUp, SecondMiss, Legacy} {
		if strings.EqualFold(strings.TrimSpace(name), r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: study-failure %q", ErrUnknownRule, name)
}

// RecreationZeroTrigger selects when the recreation penalty applies.
type RecreationZeroTrigger int

const (
	// OnScore applies the penalty when the accumulated recreation points are zero.
	// A nonzero count whose terms cancel out is penalized too.
	OnScore RecreationZeroTrigger = iota
	// OnCount applies the penalty only when no recreation was done.
	OnCount
)

func (t RecreationZeroTrigger) String() string {
	switch t {
	case OnScore:
		return "score"
	case OnCount:
		return "count"
	default:
		return fmt.Sprintf("recreation-zero(%d)", int(t))
	}
}

// ParseRecreationZeroTrigger resolves "score" or "count".
func ParseRecreationZeroTrigger(name string) (RecreationZeroTrigger, error) {
	for _, t := range []RecreationZeroTrigger{OnScore, OnCount} {
		if strings.EqualFold(strings.TrimSpace(name), t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: recreation-zero %q", ErrUnknownRule, name)
}

// ParsePenalties resolves "heavy" or "light".
func ParsePenalties(name string) (Penalties, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "heavy":
		return HeavyPenalties, nil
	case "light":
		return LightPenalties, nil
	default:
		return Penalties{}, fmt.Errorf("%w: penalties %q", ErrUnknownRule, name)
	}
}

// Rules hold every tunable part of the scoring.
type Rules struct {
	Study          Curve
	Meal           Curve
	Recreation     Curve
	StudyFailure   StudyFailureRule
	RecreationZero RecreationZeroTrigger
}

// DefaultRules uses heavy penalties, the catch-up failure rule and the score-based recreation trigger.
func DefaultRules() Rules {
	return NewRules(HeavyPenalties, CatchUp, OnScore)
}

// NewRules builds the standard curves with the given penalties and rule choices.
func NewRules(p Penalties, failure StudyFailureRule, trigger RecreationZeroTrigger) Rules {
	return Rules{
		Study:          Curve{Unit: 10, Excess: -5, Threshold: 8, ZeroPenalty: p.Study},
		Meal:           Curve{Unit: 16, Excess: -5, Threshold: 3, ZeroPenalty: p.Meal},
		Recreation:     Curve{Unit: 8, Excess: 4, Threshold: 5, ZeroPenalty: p.Recreation},
		StudyFailure:   failure,
		RecreationZero: trigger,
	}
}
