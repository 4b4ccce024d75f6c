package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is sent on every request unless overridden
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// xdgConfigFile is the config location relative to the XDG config home
const xdgConfigFile = "filmr/config.yaml"

// Config holds all configuration options for filmr
type Config struct {
	Target    TargetConfig    `yaml:"target" json:"target"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	HTTP      HTTPConfig      `yaml:"http" json:"http"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

// TargetConfig names whose reviews are scraped
type TargetConfig struct {
	UserID   string `yaml:"user_id" json:"user_id"`
	Category string `yaml:"category" json:"category"`
}

// RateLimitConfig holds the minimum spacing between request starts.
// It is shared by listing and detail fetches alike.
type RateLimitConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout          time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent        string        `yaml:"user_agent" json:"user_agent"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass" json:"cloudflare_bypass"`
}

// OutputConfig holds export settings
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`
	Path      string `yaml:"path" json:"path"`
	Overwrite bool   `yaml:"overwrite" json:"overwrite"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level"`
	File    string `yaml:"file" json:"file"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

var (
	validCategories = map[string]bool{"movie": true, "tv": true, "anime": true}
	validFormats    = map[string]bool{
		"csv": true, "json": true, "txt": true, "markdown": true, "xlsx": true, "sqlite": true,
	}
	validLogLevels = map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true, "error": true, "disabled": true, "off": true,
	}
)

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			Category: "movie",
		},
		RateLimit: RateLimitConfig{
			Interval: time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: DefaultUserAgent,
		},
		Output: OutputConfig{
			Format: "txt",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv applies FILMR_* environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if v := os.Getenv("FILMR_USER_ID"); v != "" {
		c.Target.UserID = v
	}
	if v := os.Getenv("FILMR_CATEGORY"); v != "" {
		c.Target.Category = strings.ToLower(v)
	}
	if v := os.Getenv("FILMR_RATE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("FILMR_RATE_INTERVAL: %w", err))
		} else {
			c.RateLimit.Interval = d
		}
	}
	if v := os.Getenv("FILMR_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("FILMR_HTTP_TIMEOUT: %w", err))
		} else {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("FILMR_USER_AGENT"); v != "" {
		c.HTTP.UserAgent = v
	}
	if v := os.Getenv("FILMR_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("FILMR_OUTPUT_PATH"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("FILMR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FILMR_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file. An empty path searches
// the default locations; finding nothing there is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches the working directory, then the XDG config dirs
func findConfigFile() string {
	for _, loc := range []string{"filmr.yaml", ".filmr.yaml"} {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}
	return ""
}

// FindFile returns the config file Load would read for path
func FindFile(path string) string {
	if path != "" {
		return path
	}
	return findConfigFile()
}

// DefaultPath returns the per-user config file location, creating its
// parent directory if needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(xdgConfigFile)
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	var errs []error

	if !validCategories[strings.ToLower(c.Target.Category)] {
		errs = append(errs, fmt.Errorf("invalid category %q (want movie, tv or anime)", c.Target.Category))
	}
	if c.RateLimit.Interval < 0 {
		errs = append(errs, errors.New("rate limit interval cannot be negative"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if strings.TrimSpace(c.HTTP.UserAgent) == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		errs = append(errs, fmt.Errorf("invalid output format %q", c.Output.Format))
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge overlays the non-zero fields of overrides onto c
func (c *Config) Merge(overrides *Config) error {
	if overrides == nil {
		return nil
	}
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge overrides: %w", err)
	}
	return nil
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: flags > environment variables > .env file > config file > defaults
func Load(configPath string, overrides *Config) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(xdg.ConfigHome, "filmr", ".env"))

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Merge(overrides); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
