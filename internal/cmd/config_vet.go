package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/config"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the fsgen CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML and matches the configuration schema
  3. The 'defaults' option overrides form a coherent option set

The config path is resolved using precedence:
  --config flag > FSGEN_CONFIG env > ~/.fsgen/config.yaml

Examples:
  # Validate default configuration
  fsgen config vet

  # Validate custom config path
  fsgen config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	path, err := config.ExpandPath(pathResult.Value.(string))
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	output.Debug("validating config",
		"path", path,
		"source", pathResult.Source,
	)

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(path); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
