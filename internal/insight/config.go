package insight

import "time"

// Similarity provider constants.
const (
	SimilarityProviderSpacy = "spacy"
)

// SimilarityConfig holds similarity provider configuration.
type SimilarityConfig struct {
	// Provider selects the similarity backend. Only "spacy" is supported.
	Provider string `mapstructure:"provider" json:"provider"`

	// URL is the base URL of the similarity sidecar.
	URL string `mapstructure:"url" json:"url"`

	// Model is the NLP model the sidecar should load.
	Model string `mapstructure:"model" json:"model"`

	// Timeout bounds each similarity call.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *SimilarityConfig) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = SimilarityProviderSpacy
	}
}

// Map converts the config to the generic map a provider.Factory consumes.
func (c *SimilarityConfig) Map() map[string]any {
	return map[string]any{
		"url":     c.URL,
		"model":   c.Model,
		"timeout": c.Timeout,
	}
}
