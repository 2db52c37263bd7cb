package insight

import (
	"context"
	stderrors "errors"
	"testing"
)

// stubSimilarity scores pairs from a fixed map keyed by "phrase|sentence".
type stubSimilarity struct {
	scores map[string]float64
	err    error
	calls  int
}

func (s *stubSimilarity) Name() string                       { return "stub" }
func (s *stubSimilarity) IsAvailable(_ context.Context) bool { return true }

func (s *stubSimilarity) Similarity(_ context.Context, phrase, sentence string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[phrase+"|"+sentence], nil
}

func TestSemanticExtractorThreshold(t *testing.T) {
	stub := &stubSimilarity{scores: map[string]float64{
		"pricing|We discussed the cost of the plan": 0.9,
		"pricing| The weather was nice":             0.5,
	}}
	e := NewSemanticExtractor(stub, 0.7)

	transcript := "We discussed the cost of the plan. The weather was nice"
	insights, err := e.Extract(context.Background(), transcript, []string{"pricing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight above threshold, got %d", len(insights))
	}
	if insights[0].SentenceIndex != 0 {
		t.Errorf("expected sentence_index 0, got %d", insights[0].SentenceIndex)
	}
	if insights[0].SimilarityScore == nil || *insights[0].SimilarityScore != 0.9 {
		t.Errorf("expected similarity_score 0.9, got %v", insights[0].SimilarityScore)
	}
}

func TestSemanticExtractorThresholdIsExclusive(t *testing.T) {
	stub := &stubSimilarity{scores: map[string]float64{
		"pricing|exactly at the line": 0.7,
	}}
	e := NewSemanticExtractor(stub, 0.7)

	insights, err := e.Extract(context.Background(), "exactly at the line", []string{"pricing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 0 {
		t.Errorf("score equal to threshold must not match, got %d insights", len(insights))
	}
}

func TestSemanticExtractorWordSpan(t *testing.T) {
	sentence := "the pricing of the plan is fair"
	stub := &stubSimilarity{scores: map[string]float64{
		"pricing plan|" + sentence: 0.8,
	}}
	e := NewSemanticExtractor(stub, 0.7)

	insights, err := e.Extract(context.Background(), sentence, []string{"pricing plan"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	// Union of tracker tokens: "pricing" at 1, "plan" at 4; the span is
	// non-contiguous.
	if insights[0].StartWordIndex != 1 {
		t.Errorf("expected start_word_index 1, got %d", insights[0].StartWordIndex)
	}
	if insights[0].EndWordIndex != 4 {
		t.Errorf("expected end_word_index 4, got %d", insights[0].EndWordIndex)
	}
}

func TestSemanticExtractorSpanIsCaseInsensitive(t *testing.T) {
	sentence := "Pricing matters"
	stub := &stubSimilarity{scores: map[string]float64{
		"PRICING|" + sentence: 0.8,
	}}
	e := NewSemanticExtractor(stub, 0.7)

	insights, err := e.Extract(context.Background(), sentence, []string{"PRICING"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].StartWordIndex != 0 || insights[0].EndWordIndex != 0 {
		t.Errorf("expected span (0,0), got (%d,%d)",
			insights[0].StartWordIndex, insights[0].EndWordIndex)
	}
}

func TestSemanticExtractorNoTokenOverlap(t *testing.T) {
	sentence := "it costs far too much money"
	stub := &stubSimilarity{scores: map[string]float64{
		"expensive|" + sentence: 0.85,
	}}
	e := NewSemanticExtractor(stub, 0.7)

	insights, err := e.Extract(context.Background(), sentence, []string{"expensive"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight despite no literal overlap, got %d", len(insights))
	}
	// Similarity passed but no tracker token occurs literally: (-1, -1).
	if insights[0].StartWordIndex != -1 || insights[0].EndWordIndex != -1 {
		t.Errorf("expected span (-1,-1), got (%d,%d)",
			insights[0].StartWordIndex, insights[0].EndWordIndex)
	}
	if insights[0].SimilarityScore == nil {
		t.Error("semantic strategy must always populate similarity_score")
	}
}

func TestSemanticExtractorProviderError(t *testing.T) {
	boom := stderrors.New("sidecar down")
	e := NewSemanticExtractor(&stubSimilarity{err: boom}, 0.7)

	_, err := e.Extract(context.Background(), "some text", []string{"pricing"})
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if !stderrors.Is(err, boom) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestSemanticExtractorBlankTrackerSkipped(t *testing.T) {
	stub := &stubSimilarity{scores: map[string]float64{}}
	e := NewSemanticExtractor(stub, 0.7)

	insights, err := e.Extract(context.Background(), "one sentence", []string{"  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 0 {
		t.Errorf("expected no insights for blank tracker, got %d", len(insights))
	}
	if stub.calls != 0 {
		t.Errorf("blank tracker must not reach the provider, got %d calls", stub.calls)
	}
}

func TestSemanticExtractorDefaultThreshold(t *testing.T) {
	e := NewSemanticExtractor(&stubSimilarity{}, 0)
	if e.threshold != DefaultSimilarityThreshold {
		t.Errorf("expected default threshold %v, got %v", DefaultSimilarityThreshold, e.threshold)
	}
}
