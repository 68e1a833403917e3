package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cramweek %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestSimulateSubmitsScore(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("player = \"amy\"\n")
	for i := 0; i < 7; i++ {
		b.WriteString("[[day]]\nactivities = [\"study\", \"study\", \"study\", \"meal\", \"meal\", \"meal\", \"recreation\"]\n")
	}
	planPath := filepath.Join(dir, "week.toml")
	if err := os.WriteFile(planPath, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	boardPath := filepath.Join(dir, "board.txt")
	cfgPath := filepath.Join(dir, "missing.toml")

	out := runCLI(t, "--config", cfgPath, "--leaderboard", boardPath, "simulate", planPath, "--submit")
	// 30 + 48 + 8 = 86 per day, normalized to 52.
	for _, want := range []string{"Session ", "Exam score: 52/100", "Leaderboard", "amy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	data, err := os.ReadFile(boardPath)
	if err != nil {
		t.Fatalf("read leaderboard: %v", err)
	}
	if string(data) != "amy,52\n" {
		t.Fatalf("unexpected leaderboard file: %q", string(data))
	}

	out = runCLI(t, "--config", cfgPath, "--leaderboard", boardPath, "leaderboard", "add", "bob", "70")
	if !strings.Contains(out, "bob") || strings.Index(out, "bob") > strings.Index(out, "amy") {
		t.Fatalf("expected bob ranked above amy:\n%s", out)
	}
}

func TestScoreCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	out := runCLI(t, "--config", cfgPath, "score", "--study", "8", "--meal", "3", "--recreation", "5")
	if !strings.Contains(out, "Day score: 168 (normalized 100)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestActivitiesCommand(t *testing.T) {
	out := runCLI(t, "activities")
	for _, want := range []string{"study", "movie", "sports", "recreation"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLeaderboardAddKeepsUnreadableBoard(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[leaderboard]\nstrict = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	boardPath := filepath.Join(dir, "board.txt")
	content := "alice,90\nbroken\n"
	if err := os.WriteFile(boardPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write leaderboard: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "--leaderboard", boardPath, "leaderboard", "add", "carol", "10"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "score not saved") {
		t.Fatalf("expected save refusal, got %v", err)
	}
	data, err := os.ReadFile(boardPath)
	if err != nil {
		t.Fatalf("read leaderboard: %v", err)
	}
	if string(data) != content {
		t.Fatalf("expected leaderboard untouched, got %q", string(data))
	}
}
