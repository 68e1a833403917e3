// Package main provides the CLI entrypoint for cramweek.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/cramweek/internal/config"
	"github.com/verte-zerg/cramweek/internal/model"
	"github.com/verte-zerg/cramweek/internal/plan"
	"github.com/verte-zerg/cramweek/internal/report"
	"github.com/verte-zerg/cramweek/internal/score"
	"github.com/verte-zerg/cramweek/internal/session"
	"github.com/verte-zerg/cramweek/internal/store"
)

var (
	configPath      string
	leaderboardPath string

	simulateName   string
	simulateSubmit bool

	scoreStudy      int
	scoreMeal       int
	scoreRecreation int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cramweek",
		Short:         "Score a week of studying, eating and relaxing",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/cramweek/config.toml)")
	rootCmd.PersistentFlags().StringVar(&leaderboardPath, "leaderboard", "", "leaderboard file (overrides config)")

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newActivitiesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() (config.FileConfig, error) {
	cfg, err := config.LoadConfig(resolvedConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func loadRules(cfg config.FileConfig) (score.Rules, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return score.Rules{}, fmt.Errorf("invalid scoring config: %w", err)
	}
	return rules, nil
}

// openLeaderboard never fails: I/O problems are logged and an empty board is used.
// An empty board from a failed load refuses to save, so the file is kept.
func openLeaderboard(cfg config.FileConfig) *store.Leaderboard {
	path := leaderboardPath
	if path == "" {
		path = cfg.LeaderboardPath()
	}
	var opts []store.Option
	if cfg.StrictLeaderboard() {
		opts = append(opts, store.WithStrict())
	}
	lb, err := store.Open(path, opts...)
	if err != nil {
		logErrf("failed to load leaderboard, starting empty (scores will not be saved): %v\n", err)
	}
	for _, skipped := range lb.Skipped() {
		logErrf("skipping leaderboard record: %v\n", skipped)
	}
	return lb
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <plan.toml>",
		Short: "Play a week plan and print the exam score",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simulateName, "name", "", "player name (overrides the plan)")
	cmd.Flags().BoolVar(&simulateSubmit, "submit", false, "submit the score to the leaderboard")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limits, err := cfg.Limits()
	if err != nil {
		return fmt.Errorf("invalid session config: %w", err)
	}
	rules, err := loadRules(cfg)
	if err != nil {
		return err
	}
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}

	s := session.New(limits)
	outcome, err := plan.Run(p, s)
	if err != nil {
		return fmt.Errorf("failed to run plan: %w", err)
	}
	for _, r := range outcome.Rejected {
		logErrf("day %d: not enough time or energy for %s (needs %dh/%d, has %dh/%d)\n",
			r.Day, r.Activity, r.Cost.Hours, r.Cost.Energy, r.HoursRemaining, r.EnergyRemaining)
	}

	out := cmd.OutOrStdout()
	useColor := report.ShouldUseColor(out)
	res := rules.Evaluate(outcome.Days)
	if _, err := fmt.Fprintf(out, "Session %s\n\n", s.ID()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderDays(out, outcome.Days, res, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderResult(out, res, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !simulateSubmit {
		return nil
	}

	name := p.Player
	if cmd.Flags().Changed("name") {
		name = simulateName
	}
	lb := openLeaderboard(cfg)
	if strings.TrimSpace(name) != "" {
		lb.StageName(name)
	}
	entry := store.Entry{Name: lb.StagedName(), Score: res.Score}
	ranking, err := lb.AddStaged(res.Score)
	if err != nil {
		logErrf("score not saved to %s: %v\n", lb.Path(), err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderLeaderboard(out, ranking, &entry, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single day",
		Args:  cobra.NoArgs,
		RunE:  runScoreCmd,
	}
	cmd.Flags().IntVar(&scoreStudy, "study", 0, "study sessions")
	cmd.Flags().IntVar(&scoreMeal, "meal", 0, "meals")
	cmd.Flags().IntVar(&scoreRecreation, "recreation", 0, "recreational activities")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	if scoreStudy < 0 || scoreMeal < 0 || scoreRecreation < 0 {
		return fmt.Errorf("counts must be >= 0")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := loadRules(cfg)
	if err != nil {
		return err
	}
	ds := rules.DayScore(scoreStudy, scoreMeal, scoreRecreation)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Day score: %d (normalized %d)\n", ds, score.NormalizedDayScore(ds)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <score>",
		Short: "Add a score to the leaderboard",
		Args:  cobra.ExactArgs(2),
		RunE:  runLeaderboardAddCmd,
	})
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lb := openLeaderboard(cfg)
	out := cmd.OutOrStdout()
	if err := report.RenderLeaderboard(out, lb.Ranking(), nil, report.ShouldUseColor(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runLeaderboardAddCmd(cmd *cobra.Command, args []string) error {
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", args[1], err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lb := openLeaderboard(cfg)
	entry := store.Entry{Name: store.SanitizeName(args[0]), Score: value}
	ranking, err := lb.AddEntry(args[0], value)
	if err != nil {
		return fmt.Errorf("score not saved to %s: %w", lb.Path(), err)
	}
	out := cmd.OutOrStdout()
	if err := report.RenderLeaderboard(out, ranking, &entry, report.ShouldUseColor(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newActivitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "List activities and their costs",
		Args:  cobra.NoArgs,
		RunE:  runActivitiesCmd,
	}
}

func runActivitiesCmd(cmd *cobra.Command, _ []string) error {
	for _, a := range model.Activities() {
		cost := model.DefaultCost(a)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-11s %-11s %dh %3d energy\n", a.Name(), a.Category(), cost.Hours, cost.Energy); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolvedConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	limits := session.DefaultLimits()
	return fmt.Sprintf(`# cramweek configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# days = %d               # Length of a session
# max-hours = %d         # Hours available each day
# max-energy = %d       # Energy available each day

[scoring]
# penalties = "heavy"     # heavy (-75/-50/-30) or light (-10/-5/-5)
# study-failure = "catch-up"  # catch-up, second-miss or legacy
# recreation-zero = "score"   # penalize on zero points (score) or zero count (count)

[leaderboard]
# path = %q
# strict = false          # Fail on malformed records instead of skipping them
`,
		limits.Days,
		limits.MaxHours,
		limits.MaxEnergy,
		config.DefaultLeaderboardPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
