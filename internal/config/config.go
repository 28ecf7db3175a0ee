// Package config handles configuration loading for finsheet.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Providers ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	Fetch     FetchConfig     `mapstructure:"fetch"     yaml:"fetch"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	Export    ExportConfig    `mapstructure:"export"    yaml:"export"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// ProvidersConfig holds per-provider settings.
type ProvidersConfig struct {
	AlphaVantage AlphaVantageConfig `mapstructure:"alphavantage" yaml:"alphavantage"`
	Yahoo        YahooConfig        `mapstructure:"yahoo"        yaml:"yahoo"`
}

// AlphaVantageConfig holds the statement provider settings.
type AlphaVantageConfig struct {
	APIKey            string `mapstructure:"api_key"             yaml:"api_key"`
	BaseURL           string `mapstructure:"base_url"            yaml:"base_url"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// YahooConfig holds the price provider settings.
type YahooConfig struct {
	BaseURL           string `mapstructure:"base_url"            yaml:"base_url"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// FetchConfig holds fetch defaults used when flags are absent.
type FetchConfig struct {
	Years          int    `mapstructure:"years"           yaml:"years"`
	Report         string `mapstructure:"report"          yaml:"report"` // "annual" or "quarterly"
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// CacheConfig holds disk cache settings.
type CacheConfig struct {
	Dir      string `mapstructure:"dir"       yaml:"dir"` // empty disables the disk layer
	TTLHours int    `mapstructure:"ttl_hours" yaml:"ttl_hours"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./finsheet.yaml (working directory)
//  2. ./config/finsheet.yaml
//  3. ~/.finsheet/finsheet.yaml (home directory)
//
// Environment variables override config file values.
// Format: FINSHEET_<SECTION>_<KEY>, e.g., FINSHEET_FETCH_YEARS
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("finsheet")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".finsheet"))

	v.SetEnvPrefix("FINSHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found - that's fine, defaults and env vars apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FINSHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("providers.alphavantage.base_url", "https://www.alphavantage.co")
	v.SetDefault("providers.alphavantage.requests_per_minute", 5) // free tier
	v.SetDefault("providers.yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("providers.yahoo.requests_per_minute", 30)

	// Fetch defaults
	v.SetDefault("fetch.years", 15)
	v.SetDefault("fetch.report", "annual")
	v.SetDefault("fetch.timeout_seconds", 30)

	// Cache defaults
	v.SetDefault("cache.dir", filepath.Join(homeDir(), ".finsheet", "cache"))
	v.SetDefault("cache.ttl_hours", 24)

	// Export defaults
	v.SetDefault("export.dir", ".")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables. The bare ALPHAVANTAGE_API_KEY form is the name the provider's
// own documentation uses, so both spellings work.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("FINSHEET_PROVIDERS_ALPHAVANTAGE_API_KEY"); key != "" {
		cfg.Providers.AlphaVantage.APIKey = key
	}
	if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" {
		cfg.Providers.AlphaVantage.APIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
