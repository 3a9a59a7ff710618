package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/endpoint"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// NewManifestCmd creates the manifest command.
func NewManifestCmd() *cobra.Command {
	var of OptionFlags
	var outf OutputFlags

	var (
		projectFlag  string
		endpointFlag string
		modelFlag    string
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the files a generation produces",
		Long: `Print the manifest of an application or endpoint without writing anything.

Options come from the flags, layered over the options stored in --project
or over the configured defaults.

Examples:
  # Default application manifest as a tree
  fsgen manifest -o tree

  # Manifest of an existing project with jasmine instead of its test framework
  fsgen manifest --project ./shop --testing jasmine -o table

  # Files and registrations of one endpoint
  fsgen manifest --project ./shop --endpoint shop/order -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(cmd, &of, &outf, projectFlag, endpointFlag, options.ODM(modelFlag))
		},
	}

	of.AddTo(cmd)
	outf.AddTo(cmd, string(output.FormatYAML))
	cmd.Flags().StringVar(&projectFlag, "project", "", "Project whose stored options are the base")
	cmd.Flags().StringVar(&endpointFlag, "endpoint", "", "Print the manifest of this endpoint instead of the application")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Data backend for the endpoint model")

	return cmd
}

func runManifest(cmd *cobra.Command, of *OptionFlags, outf *OutputFlags, project, endpointName string, model options.ODM) error {
	format, err := outf.Parse()
	if err != nil {
		return err
	}

	g, err := newPlanner()
	if err != nil {
		return err
	}
	set, err := projectOptions(g, project, of.Bag(cmd))
	if err != nil {
		return err
	}

	var m *manifest.Manifest
	if endpointName != "" {
		name, err := naming.Normalize(endpointName)
		if err != nil {
			return err
		}
		m, err = endpoint.Extend(set, name, endpoint.Request{RawName: endpointName, Model: model})
		if err != nil {
			return err
		}
	} else {
		m, err = g.Manifest(set)
		if err != nil {
			return err
		}
	}

	output.Debug("manifest resolved", "entries", m.Len(), "digest", m.Digest())
	return output.WriteManifest(cmd.OutOrStdout(), m, format, rootName(project))
}

// rootName labels a manifest tree.
func rootName(project string) string {
	if project == "" {
		return "."
	}
	abs, err := filepath.Abs(project)
	if err != nil {
		return project
	}
	return filepath.Base(abs)
}
