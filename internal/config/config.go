// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	DBURL            string        `mapstructure:"DB_URL"`
	GithubToken      string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL     string        `mapstructure:"GITHUB_API_URL"`
	GithubUserAgent  string        `mapstructure:"GITHUB_USER_AGENT"`
	HTTPAddr         string        `mapstructure:"HTTP_ADDR"`
	HTTPTimeout      time.Duration `mapstructure:"HTTP_TIMEOUT"`
	DebounceInterval time.Duration `mapstructure:"DEBOUNCE_INTERVAL"`
	MigrationsURL    string        `mapstructure:"MIGRATIONS_URL"`
}

// LoadConfig reads configuration from a .env file in dir (if present) and environment variables.
// Environment variables take precedence.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GITHUB_API_URL", "https://api.github.com/")
	v.SetDefault("GITHUB_USER_AGENT", "GitHub-Repo-Explorer")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("HTTP_TIMEOUT", "60s")
	v.SetDefault("DEBOUNCE_INTERVAL", "300ms")
	v.SetDefault("MIGRATIONS_URL", "file://migrations")
	// Keys without a default are only seen by Unmarshal once bound.
	_ = v.BindEnv("DB_URL")
	_ = v.BindEnv("GITHUB_TOKEN")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	_ = v.ReadInConfig() // Ignore error if file not found

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.GithubAPIURL == "" {
		return nil, errors.New("GITHUB_API_URL must not be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, errors.New("HTTP_TIMEOUT must be a positive duration (e.g. 30s)")
	}
	if cfg.DebounceInterval <= 0 {
		return nil, errors.New("DEBOUNCE_INTERVAL must be a positive duration (e.g. 300ms)")
	}

	return &cfg, nil
}
