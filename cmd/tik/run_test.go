package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pomitik/tik/internal/config"
	clierrors "github.com/pomitik/tik/internal/errors"
)

// loadConfig isolates the user config under a temp directory, optionally
// seeding a config.toml, and loads it.
func loadConfig(t *testing.T, toml string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if toml != "" {
		cfgDir := filepath.Join(dir, "tik")
		if err := os.MkdirAll(cfgDir, 0o700); err != nil {
			t.Fatalf("mkdir config dir: %v", err)
		}

		if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(toml), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	return config.Load()
}

func TestResolveInput_DurationLiteral(t *testing.T) {
	cfg := loadConfig(t, "")

	tests := []struct {
		input string
		want  time.Duration
	}{
		{"25m", 25 * time.Minute},
		{"90s", 90 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"1h30m15s", 90*time.Minute + 15*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			job, err := resolveInput(cfg, tt.input)
			if err != nil {
				t.Fatalf("resolveInput(%q) error: %v", tt.input, err)
			}

			if job.plan != nil {
				t.Fatalf("resolveInput(%q) returned a session plan, want standalone", tt.input)
			}

			if job.name != tt.input {
				t.Errorf("name = %q, want %q", job.name, tt.input)
			}

			if job.length != tt.want {
				t.Errorf("length = %v, want %v", job.length, tt.want)
			}
		})
	}
}

func TestResolveInput_BuiltinPreset(t *testing.T) {
	cfg := loadConfig(t, "")

	job, err := resolveInput(cfg, "break")
	if err != nil {
		t.Fatalf("resolveInput(break) error: %v", err)
	}

	if job.plan != nil {
		t.Fatal("expected a standalone timer, got a session plan")
	}

	// The timer keeps the preset name; only the length comes from the literal.
	if job.name != "break" {
		t.Errorf("name = %q, want %q", job.name, "break")
	}

	if job.length != 5*time.Minute {
		t.Errorf("length = %v, want 5m", job.length)
	}
}

// TestResolveInput_SessionWinsOverPreset pins the resolution order: a name
// that is both a session and a preset runs as the session. The built-in
// "pomodoro" is exactly that.
func TestResolveInput_SessionWinsOverPreset(t *testing.T) {
	cfg := loadConfig(t, "")

	job, err := resolveInput(cfg, "pomodoro")
	if err != nil {
		t.Fatalf("resolveInput(pomodoro) error: %v", err)
	}

	if job.plan == nil {
		t.Fatal("expected a session plan, got a standalone timer")
	}

	plan := *job.plan

	if plan.Name != "pomodoro" {
		t.Errorf("plan name = %q, want %q", plan.Name, "pomodoro")
	}

	if plan.Rounds != 4 {
		t.Errorf("rounds = %d, want 4", plan.Rounds)
	}

	if plan.Work.Length != 25*time.Minute {
		t.Errorf("work length = %v, want 25m", plan.Work.Length)
	}

	if plan.Break.Length != 5*time.Minute {
		t.Errorf("break length = %v, want 5m", plan.Break.Length)
	}

	if plan.LongBreak.Length != 15*time.Minute {
		t.Errorf("long break length = %v, want 15m", plan.LongBreak.Length)
	}
}

func TestResolveInput_UserSessionWithLiterals(t *testing.T) {
	cfg := loadConfig(t, `
[sessions.deep]
work = "50m"
break = "10m"
long_break = "20m"
rounds = 2
`)

	job, err := resolveInput(cfg, "deep")
	if err != nil {
		t.Fatalf("resolveInput(deep) error: %v", err)
	}

	if job.plan == nil {
		t.Fatal("expected a session plan, got a standalone timer")
	}

	plan := *job.plan

	if plan.Rounds != 2 {
		t.Errorf("rounds = %d, want 2", plan.Rounds)
	}

	if plan.Work.Name != "50m" || plan.Work.Length != 50*time.Minute {
		t.Errorf("work = %q/%v, want 50m/50m", plan.Work.Name, plan.Work.Length)
	}

	if plan.LongBreak.Length != 20*time.Minute {
		t.Errorf("long break length = %v, want 20m", plan.LongBreak.Length)
	}
}

func TestResolveInput_UnknownInput(t *testing.T) {
	cfg := loadConfig(t, "")

	_, err := resolveInput(cfg, "definitely-not-a-thing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cliErr *clierrors.CLIError
	if !clierrors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %T: %v", err, err)
	}

	if cliErr.Code != clierrors.ExitConfig {
		t.Errorf("exit code = %d, want %d (ExitConfig)", cliErr.Code, clierrors.ExitConfig)
	}

	if !strings.Contains(cliErr.Message, "definitely-not-a-thing") {
		t.Errorf("message = %q, want to name the rejected input", cliErr.Message)
	}

	if !strings.Contains(cliErr.Hint, "tik config show") {
		t.Errorf("hint = %q, want to point at 'tik config show'", cliErr.Hint)
	}
}

func TestResolveInput_ZeroDuration(t *testing.T) {
	cfg := loadConfig(t, "")

	_, err := resolveInput(cfg, "0m")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cliErr *clierrors.CLIError
	if !clierrors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %T: %v", err, err)
	}

	if !strings.Contains(cliErr.Message, "Invalid duration") {
		t.Errorf("message = %q, want an invalid-duration message, not unknown input", cliErr.Message)
	}
}

// TestResolveInput_BadPresetLiteral covers a user preset holding junk: the
// error should blame the stored literal and point at the config file.
func TestResolveInput_BadPresetLiteral(t *testing.T) {
	cfg := loadConfig(t, `
[presets]
sprint = "soonish"
`)

	_, err := resolveInput(cfg, "sprint")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cliErr *clierrors.CLIError
	if !clierrors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %T: %v", err, err)
	}

	if cliErr.Code != clierrors.ExitConfig {
		t.Errorf("exit code = %d, want %d (ExitConfig)", cliErr.Code, clierrors.ExitConfig)
	}

	if !strings.Contains(cliErr.Message, "soonish") {
		t.Errorf("message = %q, want to name the stored literal", cliErr.Message)
	}

	if !strings.Contains(cliErr.Hint, "tik config path") {
		t.Errorf("hint = %q, want to point at 'tik config path'", cliErr.Hint)
	}
}

func TestResolveInput_SessionWithBadField(t *testing.T) {
	cfg := loadConfig(t, `
[sessions.broken]
work = "nonsense"
break = "5m"
long_break = "15m"
rounds = 3
`)

	_, err := resolveInput(cfg, "broken")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cliErr *clierrors.CLIError
	if !clierrors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %T: %v", err, err)
	}

	if !strings.Contains(cliErr.Message, "broken") || !strings.Contains(cliErr.Message, "work") {
		t.Errorf("message = %q, want to name the session and the bad field", cliErr.Message)
	}
}

func TestRoundCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 rounds"},
		{1, "1 round"},
		{2, "2 rounds"},
		{12, "12 rounds"},
	}

	for _, tt := range tests {
		if got := roundCount(tt.n); got != tt.want {
			t.Errorf("roundCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
