// Package config loads and validates service configuration from YAML files
// and environment variables.
package config

import (
	"fmt"

	"github.com/skillsenselab/insightd/internal/insight"
	"github.com/skillsenselab/insightd/internal/logger"
	"github.com/skillsenselab/insightd/internal/server"
	"github.com/skillsenselab/insightd/internal/storage"
	"github.com/skillsenselab/insightd/internal/transcription"
)

// ServiceConfig contains the essential fields every deployment sets.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "insightd"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	return nil
}

// Config is the full service configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Insights      insight.Config       `yaml:"insights" mapstructure:"insights"`
}

// ApplyDefaults applies defaults across all sections.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Insights.ApplyDefaults()
}

// Validate validates all sections.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Transcription.Validate(); err != nil {
		return err
	}
	if err := c.Insights.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration for the service, applies defaults, and validates.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig("insightd", cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
