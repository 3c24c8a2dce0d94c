// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	Media   MediaConfig   `yaml:"media"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig describes the channel audio format and clocking.
type AudioConfig struct {
	SampleRate   int `yaml:"sample_rate" default:"8000" validate:"gt=0"`
	Channels     int `yaml:"channels" default:"1" validate:"oneof=1 2"`
	FrameSamples int `yaml:"frame_samples" default:"160" validate:"gt=0"`
}

// MediaConfig selects and configures the stream opener.
type MediaConfig struct {
	Type     string         `yaml:"type" default:"file" validate:"required"`
	Settings map[string]any `yaml:"settings"`
}

// LoggingConfig represents logger configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Output string `yaml:"output" default:"stdout"`
}

// Load loads configuration from a YAML file. Environment variables take
// precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PLAYBG_MEDIA_ROOT"); v != "" {
		if c.Media.Settings == nil {
			c.Media.Settings = make(map[string]any)
		}
		c.Media.Settings["root"] = v
	}
	if v := os.Getenv("PLAYBG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
