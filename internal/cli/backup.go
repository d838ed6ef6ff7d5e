package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/claudekit-labs/claudekit/internal/backup"
	"github.com/claudekit-labs/claudekit/internal/config"
)

var backupKeep int

var backupPrinter = message.NewPrinter(language.English)

func init() {
	backupPruneCmd.Flags().IntVar(&backupKeep, "keep", 0, "Number of snapshots to retain (default from config)")
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration snapshots",
	Long: `Snapshot, list, restore, and prune backups of the .claude/ configuration
directory. Snapshots are sibling directories named .claude.backup.<timestamp>.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [dir]",
	Short: "Snapshot the current configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		path, err := backup.Snapshot(dir)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to back up: no .claude/ directory.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List snapshots, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		backups, err := backup.List(dir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No snapshots found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCREATED")
		for _, b := range backups {
			fmt.Fprintf(w, "%s\t%s\n", b.Name, b.Created.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name> [dir]",
	Short: "Restore a snapshot over the current configuration",
	Long: `Replace the project's .claude/ directory with the named snapshot. The
current configuration is removed first; take a fresh snapshot beforehand if
you may want it back.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args[1:])
		if err != nil {
			return err
		}

		target, err := findBackup(dir, args[0])
		if err != nil {
			return err
		}

		if err := backup.Restore(dir, target.Path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", target.Name)
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune [dir]",
	Short: "Remove all but the most recent snapshots",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		keep := backupKeep
		if keep <= 0 {
			keep = config.BackupKeep()
		}

		result, err := backup.Prune(dir, keep)
		if err != nil {
			return err
		}

		for _, failure := range result.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not remove %s: %v\n", failure.Name, failure.Err)
		}
		backupPrinter.Fprintf(cmd.OutOrStdout(), "Removed %d snapshots, kept %d.\n", result.Removed, result.Kept)
		return nil
	},
}

// findBackup resolves a snapshot by directory name or bare timestamp.
func findBackup(dir, name string) (*backup.Backup, error) {
	backups, err := backup.List(dir)
	if err != nil {
		return nil, err
	}
	for i, b := range backups {
		if b.Name == name || b.Timestamp == name {
			return &backups[i], nil
		}
	}
	return nil, fmt.Errorf("no snapshot named %q; run 'backup list'", name)
}
