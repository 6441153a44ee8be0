package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when an overlay is applied to a nil *Config.
var ErrNilConfig = errors.New("nil *Config")

// overlaySection decodes one YAML section onto the matching Config field.
type overlaySection func(cfg *Config, node *yaml.Node) error

// overlaySections maps the top-level overlay keys to their Config sections.
// Keys not listed here are ignored.
//
//nolint:gochecknoglobals // Immutable dispatch table.
var overlaySections = map[string]overlaySection{
	"api":     func(cfg *Config, node *yaml.Node) error { return node.Decode(&cfg.API) },
	"output":  func(cfg *Config, node *yaml.Node) error { return node.Decode(&cfg.Output) },
	"logging": func(cfg *Config, node *yaml.Node) error { return node.Decode(&cfg.Logging) },
}

// MergeOverlayYAML layers the YAML file at overlayPath onto target.
// Only keys present in the overlay change; a section that sets one field keeps
// every other field of that section, so a project file may override just
// api.base_url or output.default_format. Unknown keys are ignored.
// target is left untouched when the overlay cannot be applied.
func MergeOverlayYAML(target *Config, overlayPath string) error {
	if target == nil {
		return ErrNilConfig
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	merged := *target
	for key, node := range sections {
		apply, ok := overlaySections[key]
		if !ok {
			continue
		}
		if err = apply(&merged, &node); err != nil {
			return fmt.Errorf("applying overlay section %q from %s: %w", key, overlayPath, err)
		}
	}

	*target = merged
	return nil
}
