package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claudekit-labs/claudekit/internal/branding"
	"github.com/claudekit-labs/claudekit/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scans a project, derives component recommendations
(skills, agents, hooks) from its characteristics, and generates a Claude Code
configuration, reconciling with any configuration already on disk so user
customizations survive regeneration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
// Command errors are printed to the root's error stream here, once; callers
// only decide the exit code.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
