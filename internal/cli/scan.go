package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudekit-labs/claudekit/internal/config"
	"github.com/claudekit-labs/claudekit/internal/project"
	"github.com/claudekit-labs/claudekit/internal/scanner"
)

var scanJSON bool

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output the scan result as JSON")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Inspect a project directory and report its characteristics",
	Long: `Scan a project directory (default: current directory) and report detected
languages, frameworks, databases, architecture, and any existing Claude Code
configuration. Scanning is read-only and never fails: unreadable files count
as "not present".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		result := scanner.ScanWithOptions(dir, scanner.Options{
			ConfigFileCap: config.ScanConfigFileCap(),
		})

		if scanJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling scan result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		printScanResult(cmd, result)
		return nil
	},
}

func printScanResult(cmd *cobra.Command, r *project.ScanResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project:      %s\n", r.Name)
	fmt.Fprintf(out, "Type:         %s\n", r.ProjectType)
	printListLine(cmd, "Languages", r.Languages)
	printListLine(cmd, "Frameworks", r.Frameworks)
	printListLine(cmd, "Databases", r.Databases)
	printListLine(cmd, "Architecture", r.Architecture)
	printListLine(cmd, "Tech stack", r.TechStack)
	fmt.Fprintf(out, "Tests: %v  Docker: %v  CI: %v  API: %v\n", r.HasTests, r.HasDocker, r.HasCI, r.HasAPI)

	if r.ExistingClaude {
		fmt.Fprintf(out, "Existing configuration: %d skills, %d agents, %d hooks\n",
			len(r.ExistingComponents.Skills),
			len(r.ExistingComponents.Agents),
			len(r.ExistingComponents.Hooks))
	} else {
		fmt.Fprintln(out, "Existing configuration: none")
	}
}

func printListLine(cmd *cobra.Command, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", label+":", strings.Join(values, ", "))
}

// resolveDir returns the directory argument or the current directory.
func resolveDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return dir, nil
}
