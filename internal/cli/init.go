package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/claudekit-labs/claudekit/internal/backup"
	"github.com/claudekit-labs/claudekit/internal/config"
	"github.com/claudekit-labs/claudekit/internal/configstore"
	"github.com/claudekit-labs/claudekit/internal/generate"
	"github.com/claudekit-labs/claudekit/internal/merge"
	"github.com/claudekit-labs/claudekit/internal/project"
	"github.com/claudekit-labs/claudekit/internal/recommend"
	"github.com/claudekit-labs/claudekit/internal/scanner"
)

var (
	initStrategy string
	initSkills   []string
	initAgents   []string
	initHooks    []string
	initConcerns []string
	initAudience string
	initDryRun   bool
)

var initPrinter = message.NewPrinter(language.English)

func init() {
	initCmd.Flags().StringVar(&initStrategy, "strategy", "", "Merge strategy for an existing configuration (merge, replace, backup-replace, cancel)")
	initCmd.Flags().StringSliceVar(&initSkills, "skills", nil, "Override the recommended skills")
	initCmd.Flags().StringSliceVar(&initAgents, "agents", nil, "Override the recommended agents")
	initCmd.Flags().StringSliceVar(&initHooks, "hooks", nil, "Override the recommended hooks")
	initCmd.Flags().StringSliceVar(&initConcerns, "concerns", nil, "Additional concerns (e.g. security,performance)")
	initCmd.Flags().StringVar(&initAudience, "audience", string(project.AudienceDevelopers), "Target audience (developers, non-technical, mixed)")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Show what would be generated without writing")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Generate a Claude Code configuration for a project",
	Long: `Scan the project, derive component recommendations, reconcile with any
existing .claude/ configuration, and write CLAUDE.md, settings, and the
component files.

When a configuration already exists, the merge strategy decides what happens:
merge (default) keeps everything you already have and preserves your custom
sections, replace regenerates from scratch, backup-replace snapshots the
current configuration first, and cancel aborts without touching anything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Scan and recommend.
	scanResult := scanner.ScanWithOptions(dir, scanner.Options{
		ConfigFileCap: config.ScanConfigFileCap(),
	})

	ctx := scanResult.Context()
	ctx.Concerns = append(ctx.Concerns, initConcerns...)
	if initAudience != "" {
		ctx.TargetUsers = project.Audience(initAudience)
	}

	recs, failures := recommend.Evaluate(recommend.DefaultRules(), ctx)
	for _, failure := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: rule %s failed: %v\n", failure.Rule, failure.Err)
	}

	requested := merge.Requested{
		Skills: recs.Skills,
		Agents: recs.Agents,
		Hooks:  recs.Hooks,
	}
	if initSkills != nil {
		requested.Skills = initSkills
	}
	if initAgents != nil {
		requested.Agents = initAgents
	}
	if initHooks != nil {
		requested.Hooks = initHooks
	}
	if err := merge.ValidateRequested(requested); err != nil {
		return err
	}

	// Load what is already on disk.
	existing := configstore.Load(dir)
	for _, warning := range existing.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}
	if msg, skewed := configstore.GeneratorSkew(existing.Settings, buildVersion); skewed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", msg)
	}

	strategy := merge.Strategy(initStrategy)
	if strategy == "" {
		strategy = merge.Strategy(config.MergeStrategy())
	}

	if existing.Exists {
		diff := merge.ComputeDiff(existing, requested)
		printDiff(cmd, diff)
		fmt.Fprintf(out, "Strategy: %s\n\n", strategy)
	}

	if initDryRun {
		printRecommendations(cmd, recs)
		fmt.Fprintln(out, "\nDry run: nothing written.")
		return nil
	}

	// Snapshot before a destructive replace.
	if strategy == merge.StrategyBackupReplace {
		path, err := backup.Snapshot(dir)
		if err != nil {
			return fmt.Errorf("backing up existing configuration: %w", err)
		}
		if path != "" {
			fmt.Fprintf(out, "Backed up existing configuration to %s\n", path)
		}
	}

	resolved, err := merge.Merge(existing, requested, strategy)
	if err != nil {
		return err
	}
	if resolved == nil {
		fmt.Fprintln(out, "Cancelled. Nothing written.")
		return nil
	}

	result, err := generate.Write(dir, generate.Input{
		ProjectName:       scanResult.Name,
		Context:           ctx,
		Resolved:          resolved,
		Reasons:           recs.Reasons,
		Version:           buildVersion,
		PreservedClaudeMD: configstore.ExtractCustomSections(existing.ClaudeMD),
		PreservedContext:  existing.PreservedContext,
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}
	initPrinter.Fprintf(out, "Generated %d files in %s\n", len(result.Files), dir)
	return nil
}

func printDiff(cmd *cobra.Command, diff merge.Diff) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Changes against the existing configuration:")
	printKindDiff(cmd, "skills", diff.Skills)
	printKindDiff(cmd, "agents", diff.Agents)
	printKindDiff(cmd, "hooks", diff.Hooks)
	if diff.Empty() {
		fmt.Fprintln(out, "  no changes")
	}
}

func printKindDiff(cmd *cobra.Command, kind string, d merge.KindDiff) {
	out := cmd.OutOrStdout()
	for _, name := range d.Added {
		fmt.Fprintf(out, "  + %s/%s\n", kind, name)
	}
	for _, name := range d.Removed {
		fmt.Fprintf(out, "  - %s/%s (kept under merge strategy)\n", kind, name)
	}
	for _, name := range d.Kept {
		fmt.Fprintf(out, "  = %s/%s\n", kind, name)
	}
}
