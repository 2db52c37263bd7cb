package insight

import (
	"testing"
)

func TestSentencesSplitsOnDot(t *testing.T) {
	got := Sentences("I love the new pricing plan. It is too expensive though.")
	// Trailing fragment after the final "." is its own slot.
	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d: %v", len(got), got)
	}
	if got[0] != "I love the new pricing plan" {
		t.Errorf("unexpected first sentence: %q", got[0])
	}
	if got[2] != "" {
		t.Errorf("expected empty trailing fragment, got %q", got[2])
	}
}

func TestSentencesIgnoreOtherPunctuation(t *testing.T) {
	// "!" and "?" do not terminate sentences; only "." does.
	got := Sentences("Is it good! Really? Yes.")
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(got), got)
	}
	if got[0] != "Is it good! Really? Yes" {
		t.Errorf("unexpected sentence: %q", got[0])
	}
}

func TestWords(t *testing.T) {
	got := Words("  I love   the new pricing plan ")
	if len(got) != 6 {
		t.Fatalf("expected 6 words, got %d: %v", len(got), got)
	}
	if got[4] != "pricing" {
		t.Errorf("expected 'pricing' at index 4, got %q", got[4])
	}
}

func TestTokenIndexesFirstOccurrenceWins(t *testing.T) {
	idx := TokenIndexes("Pricing plan pricing PLAN")
	if idx["pricing"] != 0 {
		t.Errorf("expected first 'pricing' at 0, got %d", idx["pricing"])
	}
	if idx["plan"] != 1 {
		t.Errorf("expected first 'plan' at 1, got %d", idx["plan"])
	}
	if len(idx) != 2 {
		t.Errorf("expected 2 distinct tokens, got %d: %v", len(idx), idx)
	}
}
