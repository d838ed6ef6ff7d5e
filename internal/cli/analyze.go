package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudekit-labs/claudekit/internal/analyze"
	"github.com/claudekit-labs/claudekit/internal/config"
)

var analyzePrompt string

func init() {
	analyzeCmd.Flags().StringVar(&analyzePrompt, "prompt", defaultAnalyzePrompt, "Prompt sent to the analyzer")
	rootCmd.AddCommand(analyzeCmd)
}

const defaultAnalyzePrompt = `Analyze this project and respond with a single fenced JSON block containing:
projectSummary, techStack, architecture, existingConfig, recommendations
(objects with kind/name/reason), and customComponentSuggestions.`

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Run the external AI analyzer against a project",
	Long: `Invoke the configured external analysis tool (analyzer.command, default
"claude") against the project directory. The analyzer is expected to print a
fenced JSON block; anything else is shown as plain text. The invocation is
bounded by analyzer.timeout and killed if it stops producing output for
analyzer.idle_timeout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		analysis, err := analyze.Run(cmd.Context(), dir, analyzePrompt, config.AnalyzerOptions())
		if err != nil {
			switch {
			case errors.Is(err, analyze.ErrUnavailable):
				return fmt.Errorf("analyzer is not available: %w", err)
			case errors.Is(err, analyze.ErrStalled), errors.Is(err, analyze.ErrTimeout):
				return fmt.Errorf("analysis aborted: %w", err)
			}
			return err
		}

		printAnalysis(cmd, analysis)
		return nil
	},
}

func printAnalysis(cmd *cobra.Command, a *analyze.Analysis) {
	out := cmd.OutOrStdout()

	if !a.Structured {
		fmt.Fprintln(out, "Analyzer returned unstructured output:")
		fmt.Fprintln(out, a.Raw)
		return
	}

	fmt.Fprintf(out, "Summary: %s\n", a.ProjectSummary)
	if len(a.TechStack) > 0 {
		fmt.Fprintf(out, "Stack:   %s\n", strings.Join(a.TechStack, ", "))
	}
	if len(a.Architecture) > 0 {
		fmt.Fprintf(out, "Architecture: %s\n", strings.Join(a.Architecture, ", "))
	}
	if a.ExistingConfig != "" {
		fmt.Fprintf(out, "Existing configuration: %s\n", a.ExistingConfig)
	}
	if len(a.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, rec := range a.Recommendations {
			fmt.Fprintf(out, "  %s/%s", rec.Kind, rec.Name)
			if rec.Reason != "" {
				fmt.Fprintf(out, ": %s", rec.Reason)
			}
			fmt.Fprintln(out)
		}
	}
	if len(a.CustomComponentSuggestions) > 0 {
		fmt.Fprintln(out, "\nCustom component ideas:")
		for _, rec := range a.CustomComponentSuggestions {
			fmt.Fprintf(out, "  %s/%s", rec.Kind, rec.Name)
			if rec.Reason != "" {
				fmt.Fprintf(out, ": %s", rec.Reason)
			}
			fmt.Fprintln(out)
		}
	}
}
