// Package spacyserver implements insight.SimilarityProvider against a spaCy
// HTTP sidecar that scores sentence similarity with word-vector embeddings.
package spacyserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skillsenselab/insightd/internal/insight"
	"github.com/skillsenselab/insightd/internal/provider"
)

const (
	// ProviderName is the registered name for the spaCy similarity provider.
	ProviderName = "spacy"

	defaultSpacyURL     = "http://localhost:8388"
	defaultSpacyModel   = "en_core_web_md"
	defaultSpacyTimeout = 30 * time.Second
)

// Config holds configuration for the spaCy similarity provider.
type Config struct {
	URL     string        `json:"url" yaml:"url"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements insight.SimilarityProvider using a spaCy HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new spaCy similarity provider.
func NewProvider(cfg Config) *Provider {
	if cfg.URL == "" {
		cfg.URL = defaultSpacyURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultSpacyModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultSpacyTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates spaCy Provider instances
// from a generic config map.
func Factory() provider.Factory[insight.SimilarityProvider] {
	return func(cfg map[string]any) (insight.SimilarityProvider, error) {
		sc := Config{}
		if v, ok := cfg["url"].(string); ok {
			sc.URL = v
		}
		if v, ok := cfg["model"].(string); ok {
			sc.Model = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			sc.Timeout = v
		}
		return NewProvider(sc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the spaCy sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type similarityRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
	Model string `json:"model,omitempty"`
}

type similarityResponse struct {
	Similarity float64 `json:"similarity"`
}

// Similarity scores the semantic similarity between phrase and sentence.
func (p *Provider) Similarity(ctx context.Context, phrase, sentence string) (float64, error) {
	body, err := json.Marshal(similarityRequest{
		TextA: phrase,
		TextB: sentence,
		Model: p.cfg.Model,
	})
	if err != nil {
		return 0, fmt.Errorf("spacy similarity: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/similarity", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("spacy similarity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("spacy similarity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("spacy similarity: unexpected status %d", resp.StatusCode)
	}

	var out similarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("spacy similarity: decode response: %w", err)
	}
	return out.Similarity, nil
}

// compile-time check
var _ insight.SimilarityProvider = (*Provider)(nil)
