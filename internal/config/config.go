// Package config assembles the LCRM command configuration from defaults, an
// optional YAML file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/config/envutil"
	"github.com/ai8future/lcrm/internal/lcrm"
	"github.com/ai8future/lcrm/internal/validation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultTimeoutMs is the request timeout when nothing else is configured
const DefaultTimeoutMs = 20000

// Config holds everything a command needs to reach the CRM
type Config struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	TimeoutMs int           `yaml:"timeout_ms"`
	Logging   LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"` // debug level plus captured request/response bodies
}

// String returns a representation of the config with the API key redacted.
func (c Config) String() string {
	key := ""
	if c.APIKey != "" {
		key = "[REDACTED]"
	}
	return fmt.Sprintf("Config{APIKey: %q, BaseURL: %q, TimeoutMs: %d, Logging: %+v}", key, c.BaseURL, c.TimeoutMs, c.Logging)
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Load loads configuration from the YAML file, the .env file in the working
// directory and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	dotenv, err := readDotEnv(".env")
	if err != nil {
		return nil, err
	}
	return LoadFrom(envutil.New(dotenv))
}

// LoadFrom is Load with an explicit variable source.
func LoadFrom(env envutil.Env) (*Config, error) {
	cfg := defaultConfig()

	configPath := env.GetString("LCRM_CONFIG", defaultConfigPath())
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to read config file: %v", apperror.ErrConfig, err)
			}
			// File doesn't exist - continue with defaults
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config file %s: %v", apperror.ErrConfig, configPath, err)
		}
	}

	cfg.applyEnvOverrides(env)
	cfg.APIKey = expandEnv(cfg.APIKey, env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns configuration with sensible defaults
func defaultConfig() *Config {
	return &Config{
		BaseURL:   lcrm.DefaultBaseURL,
		TimeoutMs: DefaultTimeoutMs,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// defaultConfigPath is <user config dir>/lcrm/config.yaml, or "" when the
// platform has no config dir.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lcrm", "config.yaml")
}

// readDotEnv parses path without touching the process environment.
// A missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", apperror.ErrConfig, path, err)
	}
	return values, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides(env envutil.Env) {
	c.APIKey = env.GetString("LCRM_API_KEY", c.APIKey)
	c.BaseURL = env.GetString("LCRM_BASE_URL", c.BaseURL)
	c.TimeoutMs = env.GetInt("LCRM_TIMEOUT_MS", c.TimeoutMs)
	c.Logging.Level = env.GetString("LCRM_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = env.GetString("LCRM_LOG_FORMAT", c.Logging.Format)
	c.Logging.Verbose = env.GetBool("LCRM_VERBOSE", c.Logging.Verbose)
}

// expandEnv expands ${VAR} patterns, so a config file can point at a secret
// kept in another variable.
func expandEnv(s string, env envutil.Env) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return os.Expand(s, env.Get)
}

// Validate checks configuration validity and normalizes the base URL
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: missing environment variable LCRM_API_KEY", apperror.ErrConfig)
	}

	c.BaseURL = lcrm.NormalizeBaseURL(c.BaseURL)
	if err := validation.ValidateBaseURL(c.BaseURL); err != nil {
		return fmt.Errorf("%w: LCRM_BASE_URL: %w", apperror.ErrConfig, err)
	}

	if c.TimeoutMs <= 0 {
		return fmt.Errorf("%w: timeout_ms must be positive, got %d", apperror.ErrConfig, c.TimeoutMs)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("%w: logging.format must be text or json, got %q", apperror.ErrConfig, c.Logging.Format)
	}

	return nil
}
