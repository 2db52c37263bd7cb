package transcription

import (
	"errors"
	"fmt"
)

// Provider constants for supported transcription backends.
const (
	ProviderAWS = "aws"
)

// Default configuration values.
const (
	DefaultProvider = ProviderAWS
	DefaultRegion   = "us-east-1"
)

// Config holds transcription provider configuration.
type Config struct {
	// Provider selects the transcription backend. Only "aws" is supported.
	Provider string `mapstructure:"provider" json:"provider"`

	// Region is the AWS region for the Transcribe service.
	Region string `mapstructure:"region" json:"region"`

	// Endpoint is a custom endpoint (e.g. LocalStack).
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// AccessKey is the AWS access key ID.
	AccessKey string `mapstructure:"access_key" json:"access_key"`

	// SecretKey is the AWS secret access key.
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Map converts the config to the generic map a provider.Factory consumes.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"region":     c.Region,
		"endpoint":   c.Endpoint,
		"access_key": c.AccessKey,
		"secret_key": c.SecretKey,
	}
}

// Validate checks that the configuration is valid for the selected provider.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAWS:
		if c.Region == "" {
			return errors.New("transcription: region is required for aws provider")
		}
	default:
		return fmt.Errorf("transcription: unsupported provider %q", c.Provider)
	}
	return nil
}
