// Package config loads client settings from FANFOU_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "http://api.fanfou.com"

// Config holds the settings for building a client from the environment.
// Environment variables are parsed from the FANFOU_ prefix.
type Config struct {
	BaseURL string `envconfig:"BASE_URL" default:"http://api.fanfou.com"`

	// OAuth 1.0a credentials; signing is enabled when all four are set.
	ConsumerKey    string `envconfig:"CONSUMER_KEY"`
	ConsumerSecret string `envconfig:"CONSUMER_SECRET"`
	AccessToken    string `envconfig:"ACCESS_TOKEN"`
	AccessSecret   string `envconfig:"ACCESS_SECRET"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	UserAgent   string        `envconfig:"USER_AGENT"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads Config from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("FANFOU", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field combinations envconfig cannot express.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("FANFOU_BASE_URL cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("FANFOU_HTTP_TIMEOUT must be > 0")
	}
	set := 0
	for _, v := range []string{c.ConsumerKey, c.ConsumerSecret, c.AccessToken, c.AccessSecret} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 4 {
		return fmt.Errorf("OAuth credentials are partial: need FANFOU_CONSUMER_KEY, FANFOU_CONSUMER_SECRET, FANFOU_ACCESS_TOKEN and FANFOU_ACCESS_SECRET")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid FANFOU_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

// HasOAuth reports whether request signing credentials are configured.
func (c *Config) HasOAuth() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// Level returns the configured zerolog level, info when unparsable.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	if c.Debug && lvl > zerolog.DebugLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

// Log writes the effective configuration at debug level without secrets.
func (c *Config) Log() {
	log.Debug().
		Str("base_url", c.BaseURL).
		Bool("oauth", c.HasOAuth()).
		Dur("http_timeout", c.HTTPTimeout).
		Str("log_level", c.Level().String()).
		Msg("client configuration loaded")
}
