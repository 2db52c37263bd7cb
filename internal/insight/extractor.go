package insight

import (
	"context"

	"github.com/skillsenselab/insightd/internal/provider"
)

// Extractor unifies the extraction strategies behind one contract. Given
// transcript text and a tracker list it returns the ordered insight
// sequence: sentence index ascending, then tracker order as given. It is
// pure and deterministic for identical inputs and configuration, and returns
// an empty (non-nil) slice when nothing matches.
type Extractor interface {
	Extract(ctx context.Context, transcript string, trackers []string) ([]Insight, error)
}

// SimilarityProvider scores the semantic similarity between a tracker phrase
// and a sentence. Implementations are pluggable backends in the provider
// pattern; scores are in [0,1].
type SimilarityProvider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Similarity returns a similarity score in [0,1] between phrase and sentence.
	Similarity(ctx context.Context, phrase, sentence string) (float64, error)
}

// NewSimilarityRegistry creates a provider registry for similarity backends.
func NewSimilarityRegistry() *provider.Registry[SimilarityProvider] {
	return provider.NewRegistry[SimilarityProvider]()
}
