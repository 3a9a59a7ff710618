package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	var of OptionFlags

	var (
		projectFlag string
		summaryFlag bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare manifests of two option sets",
		Long: `Compare the manifest of a base option set with the manifest produced
when the given flags are applied on top of it.

The base is the option set stored in --project, or the configured defaults.

Examples:
  # What changes when switching an existing project to TypeScript
  fsgen diff --project ./shop --transpiler ts

  # Path-level summary of dropping authentication from the defaults
  fsgen diff --auth=false --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, &of, projectFlag, summaryFlag)
		},
	}

	of.AddTo(cmd)
	cmd.Flags().StringVar(&projectFlag, "project", "", "Project whose stored options are the base")
	cmd.Flags().BoolVar(&summaryFlag, "summary", false, "Only list added, removed and changed paths")

	return cmd
}

func runDiff(cmd *cobra.Command, of *OptionFlags, project string, summary bool) error {
	g, err := newPlanner()
	if err != nil {
		return err
	}

	from, err := projectOptions(g, project, options.Bag{})
	if err != nil {
		return err
	}
	to, err := options.Resolve(of.Bag(cmd), from)
	if err != nil {
		return err
	}

	fromManifest, err := g.Manifest(from)
	if err != nil {
		return err
	}
	toManifest, err := g.Manifest(to)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary {
		d := manifest.Diff(fromManifest, toManifest)
		modified := make([]output.ModifiedItem, 0, len(d.Changed))
		for _, p := range d.Changed {
			modified = append(modified, output.ModifiedItem{Name: p})
		}
		fmt.Fprintln(out, output.RenderDiff(d.Added, d.Removed, modified))
		return nil
	}

	fromName := "defaults"
	if project != "" {
		fromName = rootName(project)
	}
	report, err := output.DiffManifests(fromName, fromManifest, "flags", toManifest, output.IsTTY())
	if err != nil {
		return err
	}
	if report == "" {
		fmt.Fprintln(out, "No changes detected.")
		return nil
	}
	fmt.Fprintln(out, report)
	return nil
}
