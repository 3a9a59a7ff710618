package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/config"
	"github.com/fullstack-gen/fsgen/internal/templates"
	"github.com/fullstack-gen/fsgen/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var toolsFlag bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show fsgen CLI version information.

Displays:
  - fsgen version, commit, and build date
  - Go version and number of embedded templates
  - with --tools, the node and package manager versions found in PATH`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, toolsFlag)
		},
	}

	cmd.Flags().BoolVar(&toolsFlag, "tools", false, "Detect node and the package manager")

	return cmd
}

func runVersion(cmd *cobra.Command, tools bool) error {
	ids, err := templates.List()
	if err != nil {
		return err
	}
	info := version.Get(len(ids))

	var detected []version.ToolInfo
	if tools {
		pm := GetConfig().Runner.PackageManager
		if pm == "" {
			pm = config.DefaultPackageManager
		}
		ctx := commandContext(cmd)
		detected = append(detected,
			version.DetectTool(ctx, "node"),
			version.DetectTool(ctx, pm),
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), version.FullVersionString(info, detected...))
	return nil
}
