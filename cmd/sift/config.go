package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the sift configuration file (sift.yml)
type Config struct {
	Schema     string           `mapstructure:"schema"`
	Entity     string           `mapstructure:"entity"`
	Predicates PredicatesConfig `mapstructure:"predicates"`
}

// PredicatesConfig restricts the effective predicate set
type PredicatesConfig struct {
	Only         []string `mapstructure:"only"`
	Except       []string `mapstructure:"except"`
	IgnoreErrors bool     `mapstructure:"ignore_errors"`
	MaxDepth     int      `mapstructure:"max_depth"`
}

// loadConfig loads the configuration from sift.yml or sift.yaml
func loadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("schema", "schema.yml")
	v.SetDefault("predicates.ignore_errors", false)

	// Set config name and paths
	v.SetConfigName("sift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.Predicates.Only) > 0 && len(config.Predicates.Except) > 0 {
		return nil, fmt.Errorf("predicates.only and predicates.except are mutually exclusive")
	}

	return &config, nil
}
