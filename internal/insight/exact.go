package insight

import (
	"context"
	"regexp"
	"strings"
)

// ExactExtractor locates the first case-sensitive, word-boundary-delimited
// occurrence of each tracker in each sentence. Later occurrences of the same
// tracker in the same sentence are ignored.
type ExactExtractor struct{}

// NewExactExtractor creates the exact matching strategy.
func NewExactExtractor() *ExactExtractor {
	return &ExactExtractor{}
}

// Extract implements the Extractor contract.
func (e *ExactExtractor) Extract(_ context.Context, transcript string, trackers []string) ([]Insight, error) {
	patterns := make([]*regexp.Regexp, len(trackers))
	for i, tracker := range trackers {
		if strings.TrimSpace(tracker) == "" {
			continue
		}
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(tracker) + `\b`)
	}

	insights := []Insight{}
	for i, sentence := range Sentences(transcript) {
		for t, tracker := range trackers {
			if patterns[t] == nil {
				continue
			}
			loc := patterns[t].FindStringIndex(sentence)
			if loc == nil {
				continue
			}
			// Word indices count whitespace-delimited words in the sentence
			// prefix up to the match start and end; the end index includes
			// the partial word the match terminates in.
			insights = append(insights, Insight{
				SentenceIndex:   i,
				StartWordIndex:  len(strings.Fields(sentence[:loc[0]])),
				EndWordIndex:    len(strings.Fields(sentence[:loc[1]])),
				TrackerValue:    tracker,
				TranscribeValue: strings.TrimSpace(sentence),
			})
		}
	}
	return insights, nil
}

// compile-time check
var _ Extractor = (*ExactExtractor)(nil)
