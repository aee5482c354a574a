// Package config loads the application configuration. Values merge in
// three layers: built-in defaults, then the YAML config file, then
// GITPULSE_* environment variables. The API token is environment-only
// and never written to disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the environment overrides (GITPULSE_CACHE_SIZE
// and so on).
const envPrefix = "gitpulse"

// Config represents the application configuration
type Config struct {
	DefaultFormat string   `yaml:"default_format,omitempty" split_words:"true" validate:"omitempty,oneof=table json markdown"`
	ExcludeRepos  []string `yaml:"exclude_repos,omitempty" split_words:"true"`

	// Response cache
	CacheSize    int           `yaml:"cache_size,omitempty" split_words:"true" validate:"gte=0"`
	StandardTTL  time.Duration `yaml:"standard_ttl,omitempty" envconfig:"STANDARD_TTL" validate:"gte=0"`
	ExpensiveTTL time.Duration `yaml:"expensive_ttl,omitempty" envconfig:"EXPENSIVE_TTL" validate:"gte=0"`

	// Stale pull request window
	StaleDays int `yaml:"stale_days,omitempty" split_words:"true" validate:"gte=0"`

	// Good-first-issue fan-out
	GoodFirst GoodFirstConfig `yaml:"good_first,omitempty"`

	// Minimum pause between interactive search calls; exposed for
	// callers that drive search from keystrokes.
	SearchDebounce time.Duration `yaml:"search_debounce,omitempty" split_words:"true" validate:"gte=0"`
}

// GoodFirstConfig tunes the good-first-issue fan-out
type GoodFirstConfig struct {
	StarThreshold int           `yaml:"star_threshold,omitempty" split_words:"true" validate:"gte=0"`
	RepoLimit     int           `yaml:"repo_limit,omitempty" split_words:"true" validate:"gte=0"`
	BatchSize     int           `yaml:"batch_size,omitempty" split_words:"true" validate:"gte=0"`
	BatchDelay    time.Duration `yaml:"batch_delay,omitempty" split_words:"true" validate:"gte=0"`
	ResultLimit   int           `yaml:"result_limit,omitempty" split_words:"true" validate:"gte=0"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DefaultFormat:  "table",
		CacheSize:      4096,
		StandardTTL:    10 * time.Minute,
		ExpensiveTTL:   30 * time.Minute,
		StaleDays:      7,
		SearchDebounce: 300 * time.Millisecond,
		GoodFirst: GoodFirstConfig{
			StarThreshold: 10000,
			RepoLimit:     8,
			BatchSize:     2,
			BatchDelay:    250 * time.Millisecond,
			ResultLimit:   30,
		},
	}
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".gitpulse"
	}
	return filepath.Join(configDir, "gitpulse")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads the configuration: defaults, then the config file if it
// exists, then environment overrides, then validation.
func Load() (*Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (*Config, error) {
	// A .env next to the working directory is a convenience for
	// development; missing is fine.
	_ = godotenv.Load()

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// Token returns the API token from the environment. GITPULSE_TOKEN
// wins over GITHUB_TOKEN. Tokens are never read from the config file.
func (c *Config) Token() string {
	if token := os.Getenv("GITPULSE_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// IsRepoExcluded checks if a repo is in the exclude list
func (c *Config) IsRepoExcluded(repoFullName string) bool {
	for _, excluded := range c.ExcludeRepos {
		if excluded == repoFullName {
			return true
		}
	}
	return false
}
