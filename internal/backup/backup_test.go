package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func seedClaudeDir(t *testing.T, dir, marker string) {
	t.Helper()
	hookDir := filepath.Join(dir, ".claude", "hooks")
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".claude", "settings.json"), []byte(marker), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hookDir, "secrets-scanner.sh"), []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotWithoutConfigDir(t *testing.T) {
	path, err := Snapshot(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty when there is nothing to back up", path)
	}
}

func TestSnapshotCopiesConfigDir(t *testing.T) {
	dir := t.TempDir()
	seedClaudeDir(t, dir, `{"version": "1"}`)

	path, err := Snapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(path), Prefix) {
		t.Errorf("snapshot dir %q missing prefix %q", path, Prefix)
	}

	data, err := os.ReadFile(filepath.Join(path, "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version": "1"}` {
		t.Errorf("settings.json = %q", data)
	}

	info, err := os.Stat(filepath.Join(path, "hooks", "secrets-scanner.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("hook mode = %v, want 0755 preserved", info.Mode().Perm())
	}

	// The original is untouched.
	if _, err := os.Stat(filepath.Join(dir, ".claude", "settings.json")); err != nil {
		t.Errorf("original config disturbed: %v", err)
	}
}

func TestSnapshotsNeverCollide(t *testing.T) {
	dir := t.TempDir()
	seedClaudeDir(t, dir, "{}")

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := Snapshot(dir)
		if err != nil {
			t.Fatal(err)
		}
		if seen[path] {
			t.Fatalf("duplicate snapshot path %q", path)
		}
		seen[path] = true
	}

	backups, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("List returned %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Created.After(backups[i-1].Created) {
			t.Errorf("backups not newest-first at index %d", i)
		}
	}
}

func TestListMissingDirectory(t *testing.T) {
	backups, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %v, want none", backups)
	}
}

func TestListIgnoresUnrelatedEntries(t *testing.T) {
	dir := t.TempDir()
	seedClaudeDir(t, dir, "{}")
	if err := os.Mkdir(filepath.Join(dir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, Prefix+"notadir"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	backups, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %v, want none", backups)
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	seedClaudeDir(t, dir, "original")

	path, err := Snapshot(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the live configuration, then restore.
	if err := os.WriteFile(filepath.Join(dir, ".claude", "settings.json"), []byte("mutated"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".claude", "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Restore(dir, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".claude", "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("settings.json = %q, want snapshot content", data)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "stray.txt")); !os.IsNotExist(err) {
		t.Error("stray file survived the restore")
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	dir := t.TempDir()
	if err := Restore(dir, filepath.Join(dir, Prefix+"20200101-000000.000000000")); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestPruneKeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	seedClaudeDir(t, dir, "{}")

	for i := 0; i < 5; i++ {
		if _, err := Snapshot(dir); err != nil {
			t.Fatal(err)
		}
	}

	before, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	newest := before[0].Name

	result, err := Prune(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result.Removed != 3 || result.Kept != 2 {
		t.Errorf("removed = %d, kept = %d, want 3/2", result.Removed, result.Kept)
	}
	if len(result.Failures) != 0 {
		t.Errorf("Failures = %v", result.Failures)
	}

	after, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 2 {
		t.Fatalf("List after prune = %d backups, want 2", len(after))
	}
	if after[0].Name != newest {
		t.Errorf("newest backup %q was pruned; survivors %v", newest, after)
	}
}

func TestPruneNegativeKeepRemovesAll(t *testing.T) {
	dir := t.TempDir()
	seedClaudeDir(t, dir, "{}")
	if _, err := Snapshot(dir); err != nil {
		t.Fatal(err)
	}

	result, err := Prune(dir, -1)
	if err != nil {
		t.Fatal(err)
	}
	if result.Removed != 1 || result.Kept != 0 {
		t.Errorf("removed = %d, kept = %d, want 1/0", result.Removed, result.Kept)
	}
}

func TestPruneNothingToDo(t *testing.T) {
	result, err := Prune(t.TempDir(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if result.Removed != 0 || result.Kept != 0 || len(result.Failures) != 0 {
		t.Errorf("result = %+v, want zero values", result)
	}
}
