package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/coopview/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the effective configuration (file, project overlay, environment and flags).

This checks:
- api.base_url is an absolute http or https URL
- api.timeout is a positive duration
- api.retries is between 1 and 10
- output.default_format is one of table, json, ndjson, yaml
- output.page_size is between 1 and 1000`,
		Example: `  # Validate current configuration
  coopview config validate

  # Show the checked values
  coopview config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the validated values")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := currentConfig()
	if cfg == nil {
		return ErrConfigNotLoaded
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	source := cfg.Path()
	if source == "" {
		source = "(defaults)"
	}
	cmd.Printf("\nSource: %s\n", source)
	cmd.Printf("API URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("Timeout: %s\n", cfg.API.Timeout)
	cmd.Printf("Retries: %d\n", cfg.API.Retries)
	cmd.Printf("Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("Page size: %d\n", cfg.Output.PageSize)
	cmd.Printf("Log level: %s\n", cfg.Logging.Level)
}
