// Package config loads portalgun settings from ~/.portalgun/config.yaml, an
// optional project overlay, and PORTALGUN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/portalgun/internal/engine"
	"github.com/rshade/portalgun/internal/engine/cache"
	"github.com/rshade/portalgun/internal/pager"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatNDJSON = "ndjson"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvHome         = "PORTALGUN_HOME"
	EnvProjectDir   = "PORTALGUN_PROJECT_DIR"
	EnvBaseURL      = "PORTALGUN_BASE_URL"
	EnvLogLevel     = "PORTALGUN_LOG_LEVEL"
	EnvLogFormat    = "PORTALGUN_LOG_FORMAT"
	EnvCacheEnabled = "PORTALGUN_CACHE_ENABLED"
	EnvCacheTTL     = "PORTALGUN_CACHE_TTL"
)

// Validation errors.
var (
	ErrInvalidBaseURL = errors.New("api.base_url must be an http or https URL")
	ErrInvalidTimeout = errors.New("api.timeout must be positive")
	ErrInvalidFormat  = errors.New("unsupported output format")
	ErrInvalidLevel   = errors.New("unsupported log level")
)

// Config is the full portalgun configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Query   QueryConfig   `yaml:"query"   json:"query"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	configPath string
}

// APIConfig points at the upstream catalog.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   json:"base_url"`
	Timeout   time.Duration `yaml:"timeout"    json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	DefaultPageSize int    `yaml:"default_page_size" json:"default_page_size"`
	DefaultKind     string `yaml:"default_kind"      json:"default_kind"`
}

// CacheConfig controls the on-disk page cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"     json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds"`
	Directory  string `yaml:"directory"   json:"directory"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file"   json:"file"`
}

// Defaults returns the built-in configuration without reading any file or
// environment variable.
func Defaults() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), ".portalgun")
	}
	return &Config{
		API: APIConfig{
			BaseURL: pager.DefaultBaseURL,
			Timeout: pager.DefaultTimeout,
		},
		Query: QueryConfig{
			DefaultPageSize: engine.DefaultPageSize,
			DefaultKind:     "character",
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: cache.DefaultTTLSeconds,
			Directory:  filepath.Join(dir, "cache"),
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		configPath: filepath.Join(dir, "config.yaml"),
	}
}

// New returns the defaults overlaid with the global config file, if one
// exists, and the environment. A malformed file is reported on stderr and
// otherwise ignored.
func New() *Config {
	cfg := Defaults()
	if _, err := os.Stat(cfg.configPath); err == nil {
		if loadErr := cfg.Load(); loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", loadErr)
			cfg = Defaults()
		}
	}
	cfg.applyEnvOverrides()
	return cfg
}

// Load reads the file at ConfigPath over the current values.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the configuration to ConfigPath, creating its directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// ConfigPath returns the file this configuration loads from and saves to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Validate checks every section.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if err := engine.ValidatePageSize(c.Query.DefaultPageSize); err != nil {
		return fmt.Errorf("query.default_page_size: %w", err)
	}
	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			return fmt.Errorf("cache.ttl_seconds: %w", err)
		}
	}
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatYAML, FormatNDJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level)
	}
	return nil
}

// applyEnvOverrides applies PORTALGUN_* variables. Unparseable values are
// ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if ttl, err := cache.ParseTTL(v); err == nil {
			c.Cache.TTLSeconds = ttl
		}
	}
}
