package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/coopview/internal/config"
	"github.com/rshade/coopview/internal/logging"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaults_AreValid(t *testing.T) {
	cfg := config.Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.Output.PageSize)

	d, err := cfg.API.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "relative url", mutate: func(c *config.Config) { c.API.BaseURL = "/api" }, wantErr: config.ErrInvalidBaseURL},
		{name: "ftp url", mutate: func(c *config.Config) { c.API.BaseURL = "ftp://host" }, wantErr: config.ErrInvalidBaseURL},
		{name: "bad timeout", mutate: func(c *config.Config) { c.API.Timeout = "soon" }, wantErr: config.ErrInvalidTimeout},
		{name: "negative timeout", mutate: func(c *config.Config) { c.API.Timeout = "-1s" }, wantErr: config.ErrInvalidTimeout},
		{name: "zero retries", mutate: func(c *config.Config) { c.API.Retries = 0 }, wantErr: config.ErrInvalidRetries},
		{name: "bad format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: config.ErrInvalidOutputFormat},
		{name: "bad page size", mutate: func(c *config.Config) { c.Output.PageSize = 0 }, wantErr: config.ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_LoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://localhost:9000
output:
  page_size: 20
`), 0600))

	cfg := config.Defaults()
	require.NoError(t, cfg.Load(path))

	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, config.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.Output.PageSize)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.DefaultFormat)
	assert.Equal(t, path, cfg.Path())
}

func TestConfig_LoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
timeout = "5s"
retries = 3

[logging]
level = "debug"
`), 0600))

	cfg := config.Defaults()
	require.NoError(t, cfg.Load(path))

	assert.Equal(t, "5s", cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.Retries)
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0600))
		assert.ErrorIs(t, config.Defaults().Load(path), config.ErrUnsupportedFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0600))
		assert.Error(t, config.Defaults().Load(path))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, config.Defaults().Load(filepath.Join(dir, "absent.yaml")))
	})
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Defaults()
	cfg.Output.DefaultFormat = "json"
	require.NoError(t, cfg.Save(path))

	loaded := config.Defaults()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, "json", loaded.Output.DefaultFormat)
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		cfg := config.Defaults()
		err := cfg.ApplyEnv(envMap(map[string]string{
			config.EnvAPIURL:    "http://env.local",
			config.EnvTimeout:   "2s",
			config.EnvRetries:   "4",
			config.EnvPageSize:  "50",
			config.EnvOutput:    "yaml",
			config.EnvLogLevel:  "error",
			config.EnvLogFormat: "json",
		}))
		require.NoError(t, err)

		assert.Equal(t, "http://env.local", cfg.API.BaseURL)
		assert.Equal(t, "2s", cfg.API.Timeout)
		assert.Equal(t, 4, cfg.API.Retries)
		assert.Equal(t, 50, cfg.Output.PageSize)
		assert.Equal(t, "yaml", cfg.Output.DefaultFormat)
		assert.Equal(t, "error", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("invalid integer", func(t *testing.T) {
		cfg := config.Defaults()
		err := cfg.ApplyEnv(envMap(map[string]string{config.EnvPageSize: "many"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.EnvPageSize)
	})
}

func TestNew_UsesConfigEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: ndjson\n"), 0600))
	t.Setenv(config.EnvConfigPath, path)
	t.Setenv(config.EnvOutput, "")

	cfg, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, path, cfg.Path())
}

func TestNew_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "none.yaml"))

	cfg, err := config.New()
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())
}

func TestNewWithProjectDir(t *testing.T) {
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv(config.EnvPageSize, "")

	projectDir := filepath.Join(t.TempDir(), ".coopview")
	require.NoError(t, os.MkdirAll(projectDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("output:\n  default_format: json\n  page_size: 5\n"), 0600))

	cfg, err := config.NewWithProjectDir(context.Background(), projectDir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, 5, cfg.Output.PageSize)
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
}

func TestNewWithProjectDir_PartialOverlay(t *testing.T) {
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvOutput, "")

	projectDir := filepath.Join(t.TempDir(), ".coopview")
	require.NoError(t, os.MkdirAll(projectDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("api:\n  base_url: http://localhost:3000\noutput:\n  default_format: json\n"), 0600))

	cfg, err := config.NewWithProjectDir(context.Background(), projectDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, config.DefaultRetries, cfg.API.Retries)
	assert.Equal(t, config.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, config.DefaultPageSize, cfg.Output.PageSize)
	require.NoError(t, cfg.Validate())
}

func TestResolveProjectDir(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		dir := t.TempDir()
		got := config.ResolveProjectDir(context.Background(), dir, "")
		assert.Equal(t, filepath.Join(dir, ".coopview"), got)
	})

	t.Run("no double append", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".coopview")
		assert.Equal(t, dir, config.ResolveProjectDir(context.Background(), dir, ""))
	})

	t.Run("walks up from start dir", func(t *testing.T) {
		t.Setenv(config.EnvProjectDir, "")
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".coopview"), 0o700))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o700))

		assert.Equal(t, filepath.Join(root, ".coopview"),
			config.ResolveProjectDir(context.Background(), "", nested))
	})
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "info", Format: "json"}
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)

	lc.File = "/tmp/coopview.log"
	out := lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/tmp/coopview.log", out.File)

	empty := config.LoggingConfig{}
	assert.Equal(t, logging.DefaultConfig(), empty.ToLoggingConfig())
}

func TestGetLoggingConfig(t *testing.T) {
	t.Cleanup(func() { config.SetGlobalConfig(nil) })

	assert.Equal(t, config.DefaultLogLevel, config.GetLoggingConfig().Level)

	cfg := config.Defaults()
	cfg.Logging.File = "/var/log/coopview.log"
	config.SetGlobalConfig(cfg)
	assert.Equal(t, "/var/log/coopview.log", config.GetLoggingConfig().File)
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(func() { config.SetGlobalConfig(nil) })

	assert.Equal(t, config.DefaultPageSize, config.GetGlobalConfig().Output.PageSize)

	cfg := config.Defaults()
	cfg.Output.PageSize = 42
	config.SetGlobalConfig(cfg)
	assert.Equal(t, 42, config.GetGlobalConfig().Output.PageSize)
}
