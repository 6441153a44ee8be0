package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/coopview/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Prints the configuration coopview will use after applying, in order, the
built-in defaults, the user config file, the project overlay, COOPVIEW_* environment
variables and command-line flags.`,
		Example: `  coopview config show
  coopview --api-url http://localhost:3000 config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := currentConfig()
			if cfg == nil {
				return ErrConfigNotLoaded
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath()
			if path == "" {
				return fmt.Errorf("cannot determine configuration path: set %s", config.EnvConfigPath)
			}
			cmd.Println(path)
			return nil
		},
	}
}
