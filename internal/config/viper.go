// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "FINSIGHT"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Aggregation struct {
		TopN int `mapstructure:"top_n" yaml:"top_n"`
	} `mapstructure:"aggregation" yaml:"aggregation"`

	Categorization struct {
		Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
		File          string `mapstructure:"file" yaml:"file"`
		CreditorsFile string `mapstructure:"creditors_file" yaml:"creditors_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Server struct {
		Addr            string        `mapstructure:"addr" yaml:"addr"`
		MaxUploadBytes  int64         `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `mapstructure:"server" yaml:"server"`

	Ingest struct {
		MaxConcurrency int `mapstructure:"max_concurrency" yaml:"max_concurrency"`
	} `mapstructure:"ingest" yaml:"ingest"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// InitializeConfig loads configuration with the precedence defaults < config file < environment.
// When configFile is empty, finsight.yaml is searched in $HOME/.finsight, .finsight and the
// working directory, and a missing file is not an error.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("finsight")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finsight")
		v.AddConfigPath(".finsight")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("aggregation.top_n", 10)

	v.SetDefault("categorization.enabled", false)
	v.SetDefault("categorization.file", "categories.yaml")
	v.SetDefault("categorization.creditors_file", "creditors.yaml")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("ingest.max_concurrency", 4)
}

// Validate checks a configuration that was changed after loading, for
// instance by command-line overrides.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	return validateConfig(config)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if config.Aggregation.TopN < 1 {
		return fmt.Errorf("aggregation.top_n must be at least 1, got: %d", config.Aggregation.TopN)
	}

	if strings.TrimSpace(config.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got: %d", config.Server.MaxUploadBytes)
	}

	if config.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative, got: %s", config.Server.ShutdownTimeout)
	}

	if config.Ingest.MaxConcurrency < 1 || config.Ingest.MaxConcurrency > 64 {
		return fmt.Errorf("ingest.max_concurrency must be between 1 and 64, got: %d", config.Ingest.MaxConcurrency)
	}

	return nil
}
