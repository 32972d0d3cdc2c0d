// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultPort           = 8080
	DefaultBackendURL     = "http://localhost:8000"
	DefaultRequestTimeout = 15 * time.Second
	DefaultRenderTimeout  = 2 * time.Second
	DefaultUserAgent      = "RelocateMe/1.0"
)

// apiPrefix is appended to the backend origin.
const apiPrefix = "/api"

// Config is the runtime configuration. It can be loaded from a YAML file, overlaid from
// RELOCATEME_* environment variables, and finally overridden by CLI flags.
type Config struct {
	Port           int           `yaml:"port,omitempty"            env:"RELOCATEME_PORT"`
	BackendURL     string        `yaml:"backend_url,omitempty"     env:"RELOCATEME_BACKEND_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty" env:"RELOCATEME_REQUEST_TIMEOUT"`
	RenderTimeout  time.Duration `yaml:"render_timeout,omitempty"  env:"RELOCATEME_RENDER_TIMEOUT"`
	UserAgent      string        `yaml:"user_agent,omitempty"      env:"RELOCATEME_USER_AGENT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           DefaultPort,
		BackendURL:     DefaultBackendURL,
		RequestTimeout: DefaultRequestTimeout,
		RenderTimeout:  DefaultRenderTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays RELOCATEME_* environment variables onto c. Unset variables leave fields untouched.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional file at path, overlays the environment and fills the remaining
// fields with defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config error: 'request_timeout' must be non-negative")
	}
	if c.RenderTimeout < 0 {
		return fmt.Errorf("config error: 'render_timeout' must be non-negative")
	}
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'backend_url': %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("config error: 'backend_url' must be an http or https origin: %s", c.BackendURL)
		}
		if u.Host == "" {
			return fmt.Errorf("config error: 'backend_url' has no host: %s", c.BackendURL)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.RenderTimeout == 0 {
		result.RenderTimeout = defaults.RenderTimeout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}

	return result
}

// APIBase is the backend origin with the /api prefix.
func (c *Config) APIBase() string {
	return strings.TrimRight(c.BackendURL, "/") + apiPrefix
}
