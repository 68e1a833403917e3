// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Category is a scoring bucket for activities.
type Category int

const (
	Study Category = iota
	Meal
	Recreation
)

// Categories lists every scoring category in display order.
var Categories = []Category{Study, Meal, Recreation}

func (c Category) String() string {
	switch c {
	case Study:
		return "study"
	case Meal:
		return "meal"
	case Recreation:
		return "recreation"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Activity is something the player can do during a day.
type Activity int

const (
	ActivityStudy Activity = iota
	ActivityMeal
	ActivityRecreation
	ActivityMovie
	ActivityTown
	ActivitySports

	activityCount
)

type activityInfo struct {
	name     string
	category Category
	cost     Cost
}

var activities = [activityCount]activityInfo{
	ActivityStudy:      {name: "study", category: Study, cost: Cost{Hours: 2, Energy: 20}},
	ActivityMeal:       {name: "meal", category: Meal, cost: Cost{Hours: 1, Energy: 10}},
	ActivityRecreation: {name: "recreation", category: Recreation, cost: Cost{Hours: 1, Energy: 10}},
	ActivityMovie:      {name: "movie", category: Recreation, cost: Cost{Hours: 3, Energy: 15}},
	ActivityTown:       {name: "town", category: Recreation, cost: Cost{Hours: 2, Energy: 15}},
	ActivitySports:     {name: "sports", category: Recreation, cost: Cost{Hours: 2, Energy: 25}},
}

// Activities returns all activities in declaration order.
func Activities() []Activity {
	out := make([]Activity, 0, activityCount)
	for a := Activity(0); a < activityCount; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is a known activity.
func (a Activity) Valid() bool {
	return a >= 0 && a < activityCount
}

// Name returns the lookup and display name of the activity.
func (a Activity) Name() string {
	if !a.Valid() {
		return fmt.Sprintf("activity(%d)", int(a))
	}
	return activities[a].name
}

func (a Activity) String() string {
	return a.Name()
}

// Category returns the scoring category the activity counts toward.
func (a Activity) Category() Category {
	if !a.Valid() {
		return -1
	}
	return activities[a].category
}

// ParseActivity resolves an activity by name, case-insensitively.
func ParseActivity(name string) (Activity, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for a := Activity(0); a < activityCount; a++ {
		if activities[a].name == key {
			return a, nil
		}
	}
	return -1, fmt.Errorf("unknown activity %q", name)
}

// Cost is the time and energy an activity consumes.
type Cost struct {
	Hours  int
	Energy int
}

// DefaultCost returns the catalogue cost of an activity.
func DefaultCost(a Activity) Cost {
	if !a.Valid() {
		return Cost{}
	}
	return activities[a].cost
}

// Day tallies the activities done during one in-game day.
// Day is a value type; copying it yields an independent snapshot.
type Day struct {
	counts [activityCount]int
}

// NewDay builds a day from per-activity counts. Negative counts are ignored.
func NewDay(counts map[Activity]int) Day {
	var d Day
	for a, n := range counts {
		if a.Valid() && n > 0 {
			d.counts[a] = n
		}
	}
	return d
}

// Add records one more occurrence of a.
func (d *Day) Add(a Activity) {
	if !a.Valid() {
		return
	}
	d.counts[a]++
}

// Count returns how many times a was done.
func (d Day) Count(a Activity) int {
	if !a.Valid() {
		return 0
	}
	return d.counts[a]
}

// CategoryCount sums the counts of every activity in c.
func (d Day) CategoryCount(c Category) int {
	total := 0
	for a := Activity(0); a < activityCount; a++ {
		if activities[a].category == c {
			total += d.counts[a]
		}
	}
	return total
}

// Empty reports whether nothing was done during the day.
func (d Day) Empty() bool {
	return d == Day{}
}
