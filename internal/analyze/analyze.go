// Package analyze invokes an external AI analysis tool against a project
// directory and interprets its output. The tool is treated as a black box
// that eventually prints one fenced JSON block on stdout; anything else
// degrades to an opaque-text result rather than an error. The invocation
// carries a hard wall-clock timeout and a shorter idle timeout: if the tool
// produces no output for the idle window it is forcibly terminated.
package analyze

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors callers branch on.
var (
	// ErrUnavailable means the analyzer command could not be started.
	ErrUnavailable = errors.New("analyzer unavailable")

	// ErrTimeout means the overall wall-clock limit elapsed.
	ErrTimeout = errors.New("analyzer timed out")

	// ErrStalled means the analyzer produced no output for the idle window.
	ErrStalled = errors.New("analyzer stalled")
)

// Options configures an analyzer invocation. Zero-value durations fall back
// to the defaults.
type Options struct {
	// Command is the analyzer executable, e.g. "claude".
	Command string

	// Args precede the prompt on the command line.
	Args []string

	// Timeout is the overall wall-clock limit. Default 2 minutes.
	Timeout time.Duration

	// IdleTimeout is the no-output limit. Default 20 seconds.
	IdleTimeout time.Duration
}

// DefaultTimeout and DefaultIdleTimeout apply when Options leaves them zero.
const (
	DefaultTimeout     = 2 * time.Minute
	DefaultIdleTimeout = 20 * time.Second
)

// ComponentSuggestion is one component the analyzer recommends.
type ComponentSuggestion struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Reason string `json:"reason,omitempty"`
}

// Analysis is the analyzer's interpreted output.
type Analysis struct {
	ProjectSummary             string                `json:"projectSummary"`
	TechStack                  []string              `json:"techStack"`
	Architecture               []string              `json:"architecture"`
	ExistingConfig             string                `json:"existingConfig"`
	Recommendations            []ComponentSuggestion `json:"recommendations"`
	CustomComponentSuggestions []ComponentSuggestion `json:"customComponentSuggestions"`

	// Raw is the analyzer's full stdout.
	Raw string `json:"-"`

	// Structured is false when no valid fenced JSON block was found and
	// only Raw is meaningful.
	Structured bool `json:"-"`
}

// Run invokes the analyzer against dir with the given prompt and interprets
// its stdout. Malformed or missing JSON is not an error; timeouts and an
// unstartable command are.
func Run(ctx context.Context, dir, prompt string, opts Options) (*Analysis, error) {
	if opts.Command == "" {
		return nil, fmt.Errorf("%w: no analyzer command configured", ErrUnavailable)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, opts.Args...), prompt)
	cmd := exec.CommandContext(runCtx, opts.Command, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting to analyzer output: %w", err)
	}
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %v", ErrUnavailable, opts.Command, err)
	}

	// Read stdout on a separate goroutine so the idle timer can interrupt a
	// silent analyzer.
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	var output strings.Builder
	stalled := false

	idleTimer := time.NewTimer(idle)
	defer idleTimer.Stop()

collect:
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				break collect
			}
			output.WriteString(line)
			output.WriteByte('\n')
			if !idleTimer.Stop() {
				<-idleTimer.C
			}
			idleTimer.Reset(idle)

		case <-idleTimer.C:
			stalled = true
			_ = cmd.Process.Kill()
			break collect
		}
	}

	if stalled {
		// Drain so the reader goroutine can finish before Wait reclaims
		// the pipe.
		go func() {
			for range lines {
			}
		}()
	}
	waitErr := cmd.Wait()

	if stalled {
		return nil, fmt.Errorf("%w: no output for %s", ErrStalled, idle)
	}
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if waitErr != nil {
		return nil, fmt.Errorf("analyzer exited: %w", waitErr)
	}
	select {
	case err := <-readErr:
		if err != nil {
			return nil, fmt.Errorf("reading analyzer output: %w", err)
		}
	default:
	}

	return Interpret(output.String()), nil
}
