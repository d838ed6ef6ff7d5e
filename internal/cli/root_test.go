package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestExecuteReportsCommandErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"backup", "restore", "no-such-snapshot", t.TempDir()})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute("1.0.0", "none", "today")
	if err == nil {
		t.Fatal("expected an error for a missing snapshot")
	}

	// The failure must reach the user, not just the exit code.
	if !strings.Contains(errOut.String(), "no-such-snapshot") {
		t.Errorf("stderr = %q, want the failure message", errOut.String())
	}
	if !strings.Contains(errOut.String(), "Error:") {
		t.Errorf("stderr = %q, want an Error: prefix", errOut.String())
	}
}
