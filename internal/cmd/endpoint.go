package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/endpoint"
	"github.com/fullstack-gen/fsgen/internal/generator"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// NewEndpointCmd creates the endpoint command.
func NewEndpointCmd() *cobra.Command {
	var (
		dirFlag    string
		modelFlag  string
		forceFlag  bool
		dryRunFlag bool
	)

	cmd := &cobra.Command{
		Use:   "endpoint <name>",
		Short: "Add an API endpoint to an application",
		Long: `Add a REST endpoint to a generated application.

The endpoint's files are created under server/api/<name>/ and the endpoint
is registered in the routes, sockets and models registries of the project.
Running the command again for the same name changes nothing.

Arguments:
  name    Endpoint name; use '/' to nest ("shop/order")

Examples:
  # Add an endpoint to the project in the current directory
  fsgen endpoint order

  # Nested endpoint backed by sequelize
  fsgen endpoint shop/order --model sequelize --dir ./shop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpoint(cmd, generator.EndpointRequest{
				RawName: args[0],
				Dir:     dirFlag,
				Model:   options.ODM(modelFlag),
				Force:   forceFlag,
				DryRun:  dryRunFlag,
			})
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", ".", "Project directory")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Data backend for the model (default: first configured)")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite files that differ from the generated content")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be written without writing")

	return cmd
}

func runEndpoint(cmd *cobra.Command, req generator.EndpointRequest) error {
	g, closeFn, err := newGenerator()
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := g.GenerateEndpoint(commandContext(cmd), req)
	if res != nil && res.Apply != nil {
		writeApplyResult(cmd.OutOrStdout(), res.Apply)
	}
	if err != nil {
		return reportFailure("endpoint generation failed", err)
	}

	if !req.DryRun && res.Apply.Changed() {
		output.ProjectLogger(res.Project).Info(fmt.Sprintf("endpoint %s registered under %s", req.RawName, endpoint.APIBase), "run", res.RunID)
	}
	return nil
}
