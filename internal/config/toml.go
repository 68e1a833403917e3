// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/cramweek/internal/score"
	"github.com/verte-zerg/cramweek/internal/session"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session     SessionConfig     `toml:"session"`
	Scoring     ScoringConfig     `toml:"scoring"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
}

// SessionConfig maps session limits.
type SessionConfig struct {
	Days      *int `toml:"days"`
	MaxHours  *int `toml:"max-hours"`
	MaxEnergy *int `toml:"max-energy"`
}

// ScoringConfig maps the scoring rule choices.
type ScoringConfig struct {
	Penalties      *string `toml:"penalties"`
	StudyFailure   *string `toml:"study-failure"`
	RecreationZero *string `toml:"recreation-zero"`
}

// LeaderboardConfig maps leaderboard storage settings.
type LeaderboardConfig struct {
	Path   *string `toml:"path"`
	Strict *bool   `toml:"strict"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Limits applies the session section over the defaults.
func (c FileConfig) Limits() (session.Limits, error) {
	limits := session.DefaultLimits()
	if c.Session.Days != nil {
		limits.Days = *c.Session.Days
	}
	if c.Session.MaxHours != nil {
		limits.MaxHours = *c.Session.MaxHours
	}
	if c.Session.MaxEnergy != nil {
		limits.MaxEnergy = *c.Session.MaxEnergy
	}
	if limits.Days <= 0 {
		return session.Limits{}, fmt.Errorf("session days must be > 0")
	}
	if limits.MaxHours < 0 || limits.MaxEnergy < 0 {
		return session.Limits{}, fmt.Errorf("session max-hours and max-energy must be >= 0")
	}
	return limits, nil
}

// Rules applies the scoring section over the defaults.
func (c FileConfig) Rules() (score.Rules, error) {
	penalties := score.HeavyPenalties
	failure := score.CatchUp
	trigger := score.OnScore
	var err error
	if c.Scoring.Penalties != nil {
		if penalties, err = score.ParsePenalties(*c.Scoring.Penalties); err != nil {
			return score.Rules{}, err
		}
	}
	if c.Scoring.StudyFailure != nil {
		if failure, err = score.ParseStudyFailureRule(*c.Scoring.StudyFailure); err != nil {
			return score.Rules{}, err
		}
	}
	if c.Scoring.RecreationZero != nil {
		if trigger, err = score.ParseRecreationZeroTrigger(*c.Scoring.RecreationZero); err != nil {
			return score.Rules{}, err
		}
	}
	return score.NewRules(penalties, failure, trigger), nil
}

// LeaderboardPath returns the configured leaderboard path or the XDG default.
func (c FileConfig) LeaderboardPath() string {
	if c.Leaderboard.Path != nil && *c.Leaderboard.Path != "" {
		return *c.Leaderboard.Path
	}
	return DefaultLeaderboardPath()
}

// StrictLeaderboard reports whether malformed leaderboard records should fail the load.
func (c FileConfig) StrictLeaderboard() bool {
	return c.Leaderboard.Strict != nil && *c.Leaderboard.Strict
}
