package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudekit-labs/claudekit/internal/config"
	"github.com/claudekit-labs/claudekit/internal/project"
	"github.com/claudekit-labs/claudekit/internal/recommend"
	"github.com/claudekit-labs/claudekit/internal/scanner"
)

var (
	recommendJSON     bool
	recommendVerbose  bool
	recommendConcerns []string
	recommendUsers    string
)

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Output recommendations as JSON")
	recommendCmd.Flags().BoolVar(&recommendVerbose, "verbose", false, "Include rule evaluation diagnostics")
	recommendCmd.Flags().StringSliceVar(&recommendConcerns, "concerns", nil, "Additional concerns (e.g. security,performance)")
	recommendCmd.Flags().StringVar(&recommendUsers, "audience", string(project.AudienceDevelopers), "Target audience (developers, non-technical, mixed)")
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [dir]",
	Short: "Show recommended components for a project",
	Long: `Scan a project directory and evaluate the recommendation rules against it,
printing the suggested skills, agents, and hooks with the reasons behind them.
No files are written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		result := scanner.ScanWithOptions(dir, scanner.Options{
			ConfigFileCap: config.ScanConfigFileCap(),
		})

		ctx := result.Context()
		ctx.Concerns = append(ctx.Concerns, recommendConcerns...)
		if recommendUsers != "" {
			ctx.TargetUsers = project.Audience(recommendUsers)
		}

		recs, failures := recommend.Evaluate(recommend.DefaultRules(), ctx)

		if recommendJSON {
			out, err := json.MarshalIndent(recs, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling recommendations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		printRecommendations(cmd, recs)

		if recommendVerbose && len(failures) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\nRule diagnostics:")
			for _, f := range failures {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", f.Rule, f.Err)
			}
		}
		return nil
	},
}

func printRecommendations(cmd *cobra.Command, recs *recommend.Result) {
	out := cmd.OutOrStdout()
	printComponentList(cmd, "Skills", recs.Skills)
	printComponentList(cmd, "Agents", recs.Agents)
	printComponentList(cmd, "Hooks", recs.Hooks)

	if len(recs.Reasons) > 0 {
		fmt.Fprintln(out, "\nWhy:")
		for _, reason := range recs.Reasons {
			fmt.Fprintf(out, "  - %s\n", reason)
		}
	}
}

func printComponentList(cmd *cobra.Command, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, strings.Join(names, ", "))
}
