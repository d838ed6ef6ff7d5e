package analyze

import (
	"context"
	"errors"
	"testing"
	"time"
)

// shell builds Options that run an inline shell script. The prompt argument
// Run appends is ignored by the script.
func shell(script string, timeout, idle time.Duration) Options {
	return Options{
		Command:     "sh",
		Args:        []string{"-c", script},
		Timeout:     timeout,
		IdleTimeout: idle,
	}
}

func TestRunStructuredOutput(t *testing.T) {
	script := `printf 'analyzing...\n'
printf '%s\n' '` + "```json" + `'
printf '%s\n' '{"projectSummary": "a Go CLI"}'
printf '%s\n' '` + "```" + `'`

	analysis, err := Run(context.Background(), t.TempDir(), "describe", shell(script, 10*time.Second, 5*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if !analysis.Structured {
		t.Fatalf("Structured = false; raw:\n%s", analysis.Raw)
	}
	if analysis.ProjectSummary != "a Go CLI" {
		t.Errorf("ProjectSummary = %q", analysis.ProjectSummary)
	}
}

func TestRunOpaqueOutput(t *testing.T) {
	analysis, err := Run(context.Background(), t.TempDir(), "describe",
		shell(`echo "no json here"`, 10*time.Second, 5*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Structured {
		t.Error("Structured = true, want false")
	}
	if analysis.Raw != "no json here\n" {
		t.Errorf("Raw = %q", analysis.Raw)
	}
}

func TestRunMissingCommand(t *testing.T) {
	_, err := Run(context.Background(), t.TempDir(), "p", Options{
		Command: "claudekit-test-no-such-binary",
		Timeout: time.Second,
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}

	_, err = Run(context.Background(), t.TempDir(), "p", Options{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("empty command err = %v, want ErrUnavailable", err)
	}
}

func TestRunStalledAnalyzer(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), t.TempDir(), "p",
		shell(`sleep 30`, 10*time.Second, 150*time.Millisecond))
	if !errors.Is(err, ErrStalled) {
		t.Fatalf("err = %v, want ErrStalled", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("stall detection took %s", elapsed)
	}
}

func TestRunWallClockTimeout(t *testing.T) {
	// Steady output keeps the idle timer happy; only the overall deadline
	// can stop this one.
	script := `while true; do echo tick; sleep 0.05; done`
	_, err := Run(context.Background(), t.TempDir(), "p",
		shell(script, 300*time.Millisecond, 5*time.Second))
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestRunNonzeroExit(t *testing.T) {
	_, err := Run(context.Background(), t.TempDir(), "p",
		shell(`echo partial; exit 3`, 10*time.Second, 5*time.Second))
	if err == nil {
		t.Fatal("expected an error for a failing analyzer")
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrStalled) {
		t.Errorf("err = %v, want a plain exit error", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, t.TempDir(), "p", shell(`sleep 30`, 10*time.Second, time.Second))
	if err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
