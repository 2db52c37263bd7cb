package insight

import (
	"context"
	"fmt"
	"strings"
)

// DefaultSimilarityThreshold is the minimum similarity score (exclusive) for
// a semantic match.
const DefaultSimilarityThreshold = 0.7

// SemanticExtractor matches trackers to sentences by embedding similarity.
// A sentence matches a tracker when the provider's score exceeds the
// threshold; the reported word span is the union of the tracker's tokens
// found literally in the sentence, or (-1, -1) when there is no literal
// overlap despite the similarity.
type SemanticExtractor struct {
	provider  SimilarityProvider
	threshold float64
}

// NewSemanticExtractor creates the semantic matching strategy. A zero
// threshold selects DefaultSimilarityThreshold.
func NewSemanticExtractor(p SimilarityProvider, threshold float64) *SemanticExtractor {
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &SemanticExtractor{provider: p, threshold: threshold}
}

// Extract implements the Extractor contract.
func (e *SemanticExtractor) Extract(ctx context.Context, transcript string, trackers []string) ([]Insight, error) {
	// Tracker tokens are fixed for the whole extraction; tokenize once.
	trackerTokens := make([][]string, len(trackers))
	for t, tracker := range trackers {
		for _, tok := range Words(tracker) {
			trackerTokens[t] = append(trackerTokens[t], strings.ToLower(tok))
		}
	}

	insights := []Insight{}
	for i, sentence := range Sentences(transcript) {
		tokenIndexes := TokenIndexes(sentence)
		for t, tracker := range trackers {
			if len(trackerTokens[t]) == 0 {
				continue
			}
			score, err := e.provider.Similarity(ctx, tracker, sentence)
			if err != nil {
				return nil, fmt.Errorf("insight: similarity %q vs sentence %d: %w", tracker, i, err)
			}
			if score <= e.threshold {
				continue
			}

			start, end := wordSpan(tokenIndexes, trackerTokens[t])
			s := score
			insights = append(insights, Insight{
				SentenceIndex:   i,
				StartWordIndex:  start,
				EndWordIndex:    end,
				TrackerValue:    tracker,
				TranscribeValue: strings.TrimSpace(sentence),
				SimilarityScore: &s,
			})
		}
	}
	return insights, nil
}

// wordSpan returns the min and max sentence indices of the tracker tokens
// present in the sentence, or (-1, -1) when none of them occur literally.
// The span may cover non-contiguous matches.
func wordSpan(tokenIndexes map[string]int, trackerTokens []string) (int, int) {
	start, end := -1, -1
	for _, tok := range trackerTokens {
		idx, ok := tokenIndexes[tok]
		if !ok {
			continue
		}
		if start == -1 || idx < start {
			start = idx
		}
		if idx > end {
			end = idx
		}
	}
	return start, end
}

// compile-time check
var _ Extractor = (*SemanticExtractor)(nil)
