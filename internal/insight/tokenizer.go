package insight

import "strings"

// Sentences splits transcript text into its ordered sentence sequence.
// The split is on "." only; "!" and "?" do not terminate a sentence, and a
// trailing fragment after the last "." is its own slot. Indices into the
// returned slice are the sentence_index values reported in insights.
func Sentences(text string) []string {
	return strings.Split(text, ".")
}

// Words splits a sentence into its whitespace-delimited word tokens.
func Words(sentence string) []string {
	return strings.Fields(sentence)
}

// TokenIndexes builds a lowercase token -> first-occurrence-index map for a
// sentence. Repeated tokens keep their first index.
func TokenIndexes(sentence string) map[string]int {
	indexes := make(map[string]int)
	for i, tok := range Words(sentence) {
		lower := strings.ToLower(tok)
		if _, seen := indexes[lower]; !seen {
			indexes[lower] = i
		}
	}
	return indexes
}
