package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb" yaml:"tmdb"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Listing ListingConfig `mapstructure:"listing" yaml:"listing"`
	Filter  FilterConfig  `mapstructure:"filter" yaml:"filter"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-" yaml:"-"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	Language     string        `mapstructure:"language" yaml:"language"`
	Region       string        `mapstructure:"region" yaml:"region"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	IncludeAdult bool          `mapstructure:"include_adult" yaml:"include_adult"`
}

// ServerConfig contains web server settings
type ServerConfig struct {
	Address      string        `mapstructure:"address" yaml:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// ListingConfig contains client-side paging settings
type ListingConfig struct {
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`
}

// FilterConfig contains named filter presets and the expression applied when none is given
type FilterConfig struct {
	Presets           map[string]string `mapstructure:"presets" yaml:"presets,omitempty"`
	DefaultExpression string            `mapstructure:"default_expression" yaml:"default_expression,omitempty"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Color  bool   `mapstructure:"color" yaml:"color"`
}

// Redacted returns a copy safe to print, with the API key masked
func (c Config) Redacted() Config {
	c.TMDB.APIKey = maskSecret(c.TMDB.APIKey)
	return c
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return "********" + s[len(s)-4:]
}
