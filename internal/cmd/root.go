// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/config"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	fsgenConfig *config.Config
	configPath  string
)

// NewRootCmd creates the root command for the fsgen CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fsgen",
		Short: "Full-stack application scaffolding",
		Long: `fsgen generates full-stack JavaScript applications and API endpoints.

It provides commands to:
  - Generate a new application from a set of feature options
  - Add REST endpoints to a generated application
  - Preview, diff and verify the files a generation produces`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: FSGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewEndpointCmd())
	rootCmd.AddCommand(NewManifestCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	configPath, _ = pathResult.Value.(string)

	loader := config.NewLoader()
	cfg, err := loader.Load(configPath)
	if err != nil {
		// Commands that need the file report it through 'fsgen config vet'.
		output.Debug("config load error", "error", err)
		cfg = config.DefaultConfig()
	}
	fsgenConfig = cfg

	var timestamps *bool
	if cmd.Flags().Changed("timestamps") {
		timestamps = &timestampsFlag
	}
	tsResult := config.ResolveTimestamps(timestamps, cfg)
	ts, _ := tsResult.Value.(bool)

	output.SetupLogging(output.LogConfig{
		Verbose:    verboseFlag,
		Timestamps: output.BoolPtr(ts),
	})

	if verboseFlag {
		resolved := append([]config.ResolvedValue{pathResult, tsResult}, loader.Resolved()...)
		config.LogResolvedValues(resolved)
	}

	return nil
}

// GetConfig returns the loaded configuration, or the defaults when the root
// command has not run.
func GetConfig() *config.Config {
	if fsgenConfig == nil {
		return config.DefaultConfig()
	}
	return fsgenConfig
}

// GetConfigPath returns the resolved config file path.
func GetConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configFlag
}
