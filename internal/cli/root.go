// Package cli implements the coopview command tree.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/coopview/internal/config"
	"github.com/rshade/coopview/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// ErrConfigNotLoaded is returned when a command runs without the root pre-run.
var ErrConfigNotLoaded = errors.New("configuration not loaded")

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	debug      bool
	projectDir string
	apiURL     string
	timeout    time.Duration
	retries    int
}

// NewRootCmd creates the root Cobra command for the coopview CLI.
// Running it without a subcommand behaves like "coopview list".
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		flags     rootFlags
		list      listFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "coopview",
		Short:         "Browse cooperatives from the cooperative systems API",
		Long:          "coopview fetches the cooperative list and shows it as a sortable, paginated table.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags, lookupEnv)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, config.GetLoggingConfig(), flags.debug, lookupEnv)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, ver, list)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.projectDir, "project-dir", "",
		"project directory holding a .coopview/config.yaml overlay (overrides COOPVIEW_PROJECT_DIR)")
	pf.StringVar(&flags.apiURL, "api-url", "", "base URL of the cooperatives API (overrides config and COOPVIEW_API_URL)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout, e.g. 10s (0 = use config)")
	pf.IntVar(&flags.retries, "retries", 0, "fetch attempts for transient failures (0 = use config)")

	addListFlags(cmd, &list)

	cmd.AddCommand(NewListCmd(ver), newConfigCmd(), NewVersionCmd(ver))

	return cmd
}

const rootCmdExample = `  # Browse cooperatives interactively
  coopview

  # Print the second page sorted by state, descending
  coopview list --page 2 --sort state:desc --plain

  # Export the first 50 cooperatives as JSON
  coopview list --page-size 50 --output json

  # Use a local API
  coopview --api-url http://localhost:3000

  # Show the effective configuration
  coopview config show`

// loadConfig builds the effective configuration: file, project overlay,
// environment, then explicitly set flags.
func loadConfig(cmd *cobra.Command, flags rootFlags, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	ctx := cmd.Context()

	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}
	projectDir := config.ResolveProjectDir(ctx, flags.projectDir, startDir)

	cfg, err := config.NewWithProjectDir(ctx, projectDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err = cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// CLI flags override environment variables and config file
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = flags.apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = flags.timeout.String()
	}
	if cmd.Flags().Changed("retries") {
		cfg.API.Retries = flags.retries
	}

	return cfg, nil
}

// currentConfig returns the config stored by the root pre-run.
func currentConfig() *config.Config {
	return config.GetGlobalConfig()
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigShowCmd(), NewConfigPathCmd(),
		NewConfigInitCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
