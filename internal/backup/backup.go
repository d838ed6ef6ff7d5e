// Package backup snapshots a project's .claude/ configuration directory
// before destructive operations, and enumerates, restores, and prunes the
// resulting snapshots. Snapshot directories are siblings of .claude/ named
// with a sortable timestamp.
//
// Concurrent snapshot, restore, and prune against the same project directory
// are not serialized here; callers must not interleave them.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claudekit-labs/claudekit/internal/project"
)

// Prefix is the directory name prefix shared by all snapshots.
const Prefix = project.ConfigDirName + ".backup."

// stampLayout embeds nanoseconds so back-to-back snapshots sort correctly
// and never collide.
const stampLayout = "20060102-150405.000000000"

// Backup describes one snapshot directory.
type Backup struct {
	Name      string    `json:"name"`
	Timestamp string    `json:"timestamp"`
	Created   time.Time `json:"created"`
	Path      string    `json:"path"`
}

// PruneFailure records one snapshot that could not be removed.
type PruneFailure struct {
	Name string
	Err  error
}

// PruneResult reports what a prune pass achieved. Removal is best-effort:
// a failed removal is recorded and does not stop the pass.
type PruneResult struct {
	Removed  int
	Kept     int
	Failures []PruneFailure
}

// Snapshot copies projectDir/.claude to a timestamped sibling and returns
// the snapshot path. Returns "" with no error when there is nothing to back
// up.
func Snapshot(projectDir string) (string, error) {
	src := filepath.Join(projectDir, project.ConfigDirName)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return "", nil
	}

	stamp := time.Now().Format(stampLayout)
	dst := filepath.Join(projectDir, Prefix+stamp)

	if err := copyDir(src, dst); err != nil {
		return "", fmt.Errorf("snapshotting %s: %w", src, err)
	}
	return dst, nil
}

// List returns all snapshots under projectDir, newest first.
func List(projectDir string) ([]Backup, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", projectDir, err)
	}

	var backups []Backup
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}

		stamp := strings.TrimPrefix(entry.Name(), Prefix)
		b := Backup{
			Name:      entry.Name(),
			Timestamp: stamp,
			Path:      filepath.Join(projectDir, entry.Name()),
		}

		if created, err := time.ParseInLocation(stampLayout, stamp, time.Local); err == nil {
			b.Created = created
		} else if info, err := entry.Info(); err == nil {
			// Unparsable stamp: fall back to directory mtime.
			b.Created = info.ModTime()
		}

		backups = append(backups, b)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Created.After(backups[j].Created)
	})
	return backups, nil
}

// Restore replaces projectDir/.claude with the contents of backupPath.
// The current directory is removed first (absence tolerated). If the copy-in
// step fails after removal, the configuration directory is left absent; the
// snapshot itself is never modified, so a retry remains possible.
func Restore(projectDir, backupPath string) error {
	if info, err := os.Stat(backupPath); err != nil || !info.IsDir() {
		return fmt.Errorf("backup %s does not exist", backupPath)
	}

	dst := filepath.Join(projectDir, project.ConfigDirName)
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("removing %s: %w", dst, err)
	}

	if err := copyDir(backupPath, dst); err != nil {
		return fmt.Errorf("restoring %s: %w", backupPath, err)
	}
	return nil
}

// Prune removes all but the keep most recent snapshots. Removal failures are
// collected per item and do not abort the pass; the returned counts reflect
// what was actually achieved.
func Prune(projectDir string, keep int) (*PruneResult, error) {
	if keep < 0 {
		keep = 0
	}

	backups, err := List(projectDir)
	if err != nil {
		return nil, err
	}

	result := &PruneResult{}
	for i, b := range backups {
		if i < keep {
			result.Kept++
			continue
		}
		if err := os.RemoveAll(b.Path); err != nil {
			result.Kept++
			result.Failures = append(result.Failures, PruneFailure{Name: b.Name, Err: err})
			continue
		}
		result.Removed++
	}

	return result, nil
}

// copyDir recursively copies src to dst. Symlinks and other special files
// are skipped.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}
