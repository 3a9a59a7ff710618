package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/generator"
	"github.com/fullstack-gen/fsgen/internal/output"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
	"github.com/fullstack-gen/fsgen/internal/prompt"
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	var of OptionFlags

	var (
		dirFlag         string
		skipInstallFlag bool
		skipConfigFlag  bool
		forceFlag       bool
		dryRunFlag      bool
		yesFlag         bool
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Generate a new application",
		Long: `Generate a new full-stack application.

Every option not passed as a flag is asked for interactively, or taken from
the configured defaults when stdin is not a terminal or --yes is given.
The resolved options are stored in .fsgenrc.json at the project root.

Arguments:
  name    Application name; also the target directory unless --dir is set

Examples:
  # Generate with prompts
  fsgen new shop

  # Generate without prompts, TypeScript and no backend
  fsgen new shop --yes --transpiler ts --odms=

  # Regenerate with the options stored in an existing project
  fsgen new shop --skip-config

  # Preview the files without writing
  fsgen new shop --yes --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], &of, newFlags{
				dir:         dirFlag,
				skipInstall: skipInstallFlag,
				skipConfig:  skipConfigFlag,
				force:       forceFlag,
				dryRun:      dryRunFlag,
				yes:         yesFlag,
			})
		},
	}

	of.AddTo(cmd)
	cmd.Flags().StringVar(&dirFlag, "dir", "", "Project directory (default: <name>)")
	cmd.Flags().BoolVar(&skipInstallFlag, "skip-install", false, "Do not install dependencies")
	cmd.Flags().BoolVar(&skipConfigFlag, "skip-config", false, "Reuse the options stored in an existing project")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite files that differ from the generated content")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Never prompt; use defaults for unset options")

	return cmd
}

type newFlags struct {
	dir         string
	skipInstall bool
	skipConfig  bool
	force       bool
	dryRun      bool
	yes         bool
}

func runNew(cmd *cobra.Command, name string, of *OptionFlags, f newFlags) error {
	ctx := commandContext(cmd)

	g, closeFn, err := newGenerator()
	if err != nil {
		return err
	}
	defer closeFn()

	dir := f.dir
	if dir == "" {
		dir = name
	}

	req := generator.GenerateRequest{
		Name:        name,
		Dir:         dir,
		Options:     of.Bag(cmd),
		SkipInstall: f.skipInstall,
		SkipConfig:  f.skipConfig,
		Force:       f.force,
		DryRun:      f.dryRun,
	}

	reuse := f.skipConfig && projectconfig.Exists(dir)
	if !reuse && prompt.Interactive(f.yes) {
		answers, err := prompt.Ask(ctx, req.Options, g.Baseline())
		if err != nil {
			return err
		}
		req.Prompts = answers
	}

	projectLog := output.ProjectLogger(name)
	if f.dryRun {
		projectLog.Info("dry run - no changes will be made")
	}

	res, err := g.Generate(ctx, req)
	if res != nil && res.Apply != nil {
		writeApplyResult(cmd.OutOrStdout(), res.Apply)
	}
	if err != nil {
		return reportFailure("generation failed", err)
	}

	if res.Install != nil {
		projectLog.Info(fmt.Sprintf("dependencies installed in %s", res.Install.Duration.Round(time.Millisecond)),
			"attempts", res.Install.Attempts)
	}
	if !f.dryRun {
		projectLog.Info(fmt.Sprintf("application ready in %s", res.Dir), "run", res.RunID)
	}
	return nil
}
