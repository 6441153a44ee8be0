package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/coopview/internal/logging"
)

// ResolveProjectDir determines the project-local .coopview directory.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. COOPVIEW_PROJECT_DIR env var
//  3. walking up from startDir looking for a .coopview directory
//
// Returns "" when no project directory is found. Does not create anything.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := findProjectDir(startDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.FromContext(ctx).Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return dir
}

// findProjectDir walks up from start until it finds a .coopview directory
// that is not the user config directory.
func findProjectDir(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	userDir, _ := Dir()

	for {
		candidate := filepath.Join(abs, configDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != userDir {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", os.ErrNotExist
		}
		abs = parent
	}
}

// NewWithProjectDir loads the user config, then layers the project
// overlay on top, then applies the environment. A broken overlay is logged
// and skipped.
func NewWithProjectDir(ctx context.Context, projectDir string) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}
	if projectDir == "" {
		return cfg, nil
	}

	overlayPath := filepath.Join(projectDir, configFileYAML)
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		return cfg, nil
	}

	merged := *cfg
	if mergeErr := MergeOverlayYAML(&merged, overlayPath); mergeErr != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(mergeErr).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using user config")
		return cfg, nil
	}

	// Environment still wins over the overlay.
	if err = merged.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &merged, nil
}

// toAbsProjectDir converts dir to an absolute path ending in ".coopview".
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}
	return filepath.Join(abs, configDirName)
}
