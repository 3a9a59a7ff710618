package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/config"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the fsgen CLI configuration.

Creates ~/.fsgen/config.yaml (or the file named by --config / FSGEN_CONFIG)
with the default values:
  - log and runner settings (retry attempts, timeouts, package manager)
  - the history ledger location
  - an empty 'defaults' section for baseline option overrides

Examples:
  # Initialize configuration
  fsgen config init

  # Overwrite existing configuration
  fsgen config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, forceFlag)
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	path, err := config.ExpandPath(pathResult.Value.(string))
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewIOError("creating config directory", filepath.Dir(path), err)
	}
	if err := config.WriteFile(path, config.DefaultConfig()); err != nil {
		return oerrors.NewIOError("writing config file", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration initialized: "+path)
	fmt.Fprintln(out, "Validate with: fsgen config vet")
	return nil
}
