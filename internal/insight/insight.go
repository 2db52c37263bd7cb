// Package insight implements tracker insight extraction over transcript
// text. Two interchangeable strategies implement the Extractor contract:
// exact token matching and semantic similarity matching.
package insight

import "fmt"

// Strategy selects an extraction strategy by name.
type Strategy string

const (
	// StrategyExact matches trackers literally on word boundaries.
	StrategyExact Strategy = "exact"
	// StrategySemantic matches trackers by embedding similarity.
	StrategySemantic Strategy = "semantic"
)

// ParseStrategy validates a strategy name. An empty value selects the
// exact strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyExact, nil
	case StrategyExact:
		return StrategyExact, nil
	case StrategySemantic:
		return StrategySemantic, nil
	default:
		return "", fmt.Errorf("insight: unknown strategy %q", s)
	}
}

// Insight is one recorded match of a tracker to a sentence.
//
// Word indices are 0-based positions within the whitespace-delimited words
// of the matched sentence. For the exact strategy they bound the literal
// tracker occurrence; for the semantic strategy they bound the union of
// tracker tokens found in the sentence, and are both -1 when the similarity
// passed the threshold without any literal token overlap.
type Insight struct {
	SentenceIndex   int      `json:"sentence_index"`
	StartWordIndex  int      `json:"start_word_index"`
	EndWordIndex    int      `json:"end_word_index"`
	TrackerValue    string   `json:"tracker_value"`
	TranscribeValue string   `json:"transcribe_value"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}

// Config holds extraction configuration.
type Config struct {
	// DefaultStrategy is used when a request does not select one.
	DefaultStrategy string `mapstructure:"default_strategy" json:"default_strategy"`

	// SimilarityThreshold is the minimum score (exclusive) for a semantic match.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" json:"similarity_threshold"`

	// Similarity configures the similarity provider backend.
	Similarity SimilarityConfig `mapstructure:"similarity" json:"similarity"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.DefaultStrategy == "" {
		c.DefaultStrategy = string(StrategyExact)
	}
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	c.Similarity.ApplyDefaults()
}

// Validate checks the extraction configuration.
func (c *Config) Validate() error {
	if _, err := ParseStrategy(c.DefaultStrategy); err != nil {
		return fmt.Errorf("insights: %w", err)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("insights: similarity_threshold must be in [0,1] (got: %v)", c.SimilarityThreshold)
	}
	return nil
}
