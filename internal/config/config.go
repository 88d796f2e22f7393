package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey overrides the apikey from the config file.
	EnvAPIKey = "UP_API_KEY"
	// EnvBaseURL overrides the base_url from the config file.
	EnvBaseURL = "UP_BASE_URL"

	defaultBaseURL = "https://api.up.com.au/api/v1"
	defaultTimeout = 30 * time.Second
	defaultDays    = 7
)

// Config represents the upreport configuration file.
type Config struct {
	APIKey   string        `yaml:"apikey"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size,omitempty"`
	Days     int           `yaml:"days"`
}

// ConfigError reports a missing or malformed setting. It is returned before
// any request is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// DefaultPath returns $HOME/.config/upreport/config.yaml, honouring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "upreport", "config.yaml"), nil
}

// Load reads the config file at path, applies defaults, then applies
// environment overrides (including a .env file in the working directory).
// Missing files are not an error; Validate reports what is still unset.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default("")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	return cfg, nil
}

// Save writes a Config to a YAML file readable only by its owner, since it
// holds the access token.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for the given token.
func Default(apiKey string) *Config {
	return &Config{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
		Days:    defaultDays,
	}
}

// Validate checks the settings needed to talk to the API.
func (c *Config) Validate() error {
	switch {
	case c.APIKey == "":
		return &ConfigError{Field: "apikey", Reason: "is required (set it in the config file or " + EnvAPIKey + ")"}
	case strings.ContainsAny(c.APIKey, " \t\r\n"):
		return &ConfigError{Field: "apikey", Reason: "must not contain whitespace"}
	case c.BaseURL == "":
		return &ConfigError{Field: "base_url", Reason: "is required"}
	case c.Timeout < 0:
		return &ConfigError{Field: "timeout", Reason: "must not be negative"}
	case c.PageSize < 0:
		return &ConfigError{Field: "page_size", Reason: "must not be negative"}
	case c.Days <= 0:
		return &ConfigError{Field: "days", Reason: "must be positive"}
	}
	return nil
}
