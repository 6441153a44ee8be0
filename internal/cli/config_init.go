package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/coopview/internal/config"
)

// ErrConfigExists is returned by config init when the file is already present.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project it writes a project overlay at ./.coopview/config.yaml instead of
// the user config file.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

By default the user configuration at ~/.coopview/config.yaml (or $COOPVIEW_CONFIG)
is written. Use --project to create an overlay at ./.coopview/config.yaml that is
merged on top of the user configuration when coopview runs inside this directory.`,
		Example: `  # Create the user configuration
  coopview config init

  # Create a project overlay in the current directory
  coopview config init --project

  # Overwrite an existing file
  coopview config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath()
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				path = filepath.Join(wd, ".coopview", "config.yaml")
			}
			if path == "" {
				return fmt.Errorf("cannot determine configuration path: set %s", config.EnvConfigPath)
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create a project overlay in the current directory")

	return cmd
}

// initConfig writes the default configuration to path.
func initConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if filepath.Ext(path) == ".toml" {
		return fmt.Errorf("%w: config init writes YAML, got %s", config.ErrUnsupportedFormat, path)
	}

	cfg := config.Defaults()
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
