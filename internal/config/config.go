// Package config loads coopview settings from the config file, the environment and CLI flags.
//
// Precedence, highest first: command-line flags, COOPVIEW_* environment variables,
// the project overlay (.coopview/config.yaml in the working tree), the user config
// file (~/.coopview/config.yaml or config.toml), built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultBaseURL       = "https://subscribe-api-production.up.railway.app"
	DefaultTimeout       = "15s"
	DefaultRetries       = 1
	DefaultOutputFormat  = "table"
	DefaultPageSize      = 10
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "console"
	configDirName        = ".coopview"
	configFileYAML       = "config.yaml"
	configFileTOML       = "config.toml"
	maxRetries           = 10
	maxPageSize          = 1000
	outputTypeFile       = "file"
	configFilePermission = 0o600
	configDirPermission  = 0o700
)

// Environment variable names.
const (
	EnvConfigPath = "COOPVIEW_CONFIG"
	EnvAPIURL     = "COOPVIEW_API_URL"
	EnvTimeout    = "COOPVIEW_TIMEOUT"
	EnvRetries    = "COOPVIEW_RETRIES"
	EnvPageSize   = "COOPVIEW_PAGE_SIZE"
	EnvOutput     = "COOPVIEW_OUTPUT"
	EnvLogLevel   = "COOPVIEW_LOG_LEVEL"
	EnvLogFormat  = "COOPVIEW_LOG_FORMAT"
	EnvLogFile    = "COOPVIEW_LOG_FILE"
	EnvProjectDir = "COOPVIEW_PROJECT_DIR"
)

// Validation errors.
var (
	ErrInvalidBaseURL      = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout      = errors.New("api.timeout must be a positive duration")
	ErrInvalidRetries      = errors.New("api.retries must be between 1 and 10")
	ErrInvalidOutputFormat = errors.New("output.default_format must be one of table, json, ndjson, yaml")
	ErrInvalidPageSize     = errors.New("output.page_size must be between 1 and 1000")
	ErrUnsupportedFormat   = errors.New("unsupported config file extension")
)

// APIConfig configures the cooperatives API client.
type APIConfig struct {
	BaseURL string `yaml:"base_url" toml:"base_url"`
	Timeout string `yaml:"timeout"  toml:"timeout"`
	Retries int    `yaml:"retries"  toml:"retries"`
}

// TimeoutDuration parses Timeout, falling back to DefaultTimeout when it is empty.
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	raw := a.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidTimeout, raw)
	}
	return d, nil
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" toml:"default_format"`
	PageSize      int    `yaml:"page_size"      toml:"page_size"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"  toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file"   toml:"file"`
}

// Config is the complete coopview configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     toml:"api"`
	Output  OutputConfig  `yaml:"output"  toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// path is the file the config was loaded from, if any.
	path string
}

// Defaults returns a Config populated with built-in defaults.
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
			Retries: DefaultRetries,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			PageSize:      DefaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns defaults overlaid with the user config file and the environment.
// A missing config file is not an error; a malformed one is.
func New() (*Config, error) {
	cfg := Defaults()

	path := ResolvePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err = cfg.Load(path); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvePath returns the config file to load: $COOPVIEW_CONFIG, else
// ~/.coopview/config.yaml, else ~/.coopview/config.toml when only that exists.
// Returns "" when the home directory cannot be determined.
func ResolvePath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	yamlPath := filepath.Join(dir, configFileYAML)
	if _, statErr := os.Stat(yamlPath); statErr == nil {
		return yamlPath
	}
	tomlPath := filepath.Join(dir, configFileTOML)
	if _, statErr := os.Stat(tomlPath); statErr == nil {
		return tomlPath
	}
	return yamlPath
}

// Dir returns the user configuration directory (~/.coopview).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Path returns the file this config was loaded from, or "" for defaults only.
func (c *Config) Path() string {
	return c.path
}

// Load decodes the file at path onto c. The format is chosen by extension:
// .yaml/.yml use YAML, .toml uses TOML. Keys absent in the file keep their values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	case ".toml":
		if _, err = toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	c.path = path
	return nil
}

// Save writes c as YAML to path, creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPermission); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePermission); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// ApplyEnv overrides fields from COOPVIEW_* variables found via lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvTimeout); ok && v != "" {
		c.API.Timeout = v
	}
	if v, ok := lookupEnv(EnvRetries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetries, err)
		}
		c.API.Retries = n
	}
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Output.PageSize = n
	}
	if v, ok := lookupEnv(EnvOutput); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	return nil
}

// IsValidOutputFormat reports whether format names a supported renderer.
func IsValidOutputFormat(format string) bool {
	switch format {
	case "table", "json", "ndjson", "yaml":
		return true
	default:
		return false
	}
}

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL))
	}
	if _, err = c.API.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if c.API.Retries < 1 || c.API.Retries > maxRetries {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidRetries, c.API.Retries))
	}
	if !IsValidOutputFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}
	if c.Output.PageSize < 1 || c.Output.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Output.PageSize))
	}

	return errors.Join(errs...)
}

//nolint:gochecknoglobals // Set once per CLI invocation, read by subcommands.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig stores cfg for the rest of the invocation.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the stored config, or defaults when none was set.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return Defaults()
	}
	return globalConfig
}
