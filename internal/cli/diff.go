package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claudekit-labs/claudekit/internal/config"
	"github.com/claudekit-labs/claudekit/internal/configstore"
	"github.com/claudekit-labs/claudekit/internal/merge"
	"github.com/claudekit-labs/claudekit/internal/project"
	"github.com/claudekit-labs/claudekit/internal/recommend"
	"github.com/claudekit-labs/claudekit/internal/scanner"
)

var diffJSON bool

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Output the diff as JSON")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff [dir]",
	Short: "Compare the existing configuration with a fresh recommendation run",
	Long: `Scan the project, evaluate the recommendation rules, and show how the
resulting component set differs from the configuration already on disk.
Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		scanResult := scanner.ScanWithOptions(dir, scanner.Options{
			ConfigFileCap: config.ScanConfigFileCap(),
		})
		ctx := scanResult.Context()
		ctx.TargetUsers = project.AudienceDevelopers

		recs, _ := recommend.Evaluate(recommend.DefaultRules(), ctx)
		existing := configstore.Load(dir)

		diff := merge.ComputeDiff(existing, merge.Requested{
			Skills: recs.Skills,
			Agents: recs.Agents,
			Hooks:  recs.Hooks,
		})

		if diffJSON {
			out, err := json.MarshalIndent(diff, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling diff: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		if !existing.Exists {
			fmt.Fprintln(cmd.OutOrStdout(), "No existing configuration; everything would be new.")
		}
		printDiff(cmd, diff)
		return nil
	},
}
