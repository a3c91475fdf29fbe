package match

import "strings"

// WordSimilarity calculates the Jaccard similarity of the trigram sets of
// two strings, where trigrams are extracted per word and unioned. Returns
// a value between 0.0 (no shared trigrams) and 1.0 (identical sets).
func WordSimilarity(a, b string) float64 {
	setA := wordTrigrams(a)
	setB := wordTrigrams(b)
	return jaccard(setA, setB, strings.EqualFold(a, b))
}

// StringSimilarity calculates the Jaccard similarity of the trigram sets
// of two strings taken as a whole, spaces included.
func StringSimilarity(a, b string) float64 {
	setA := trigrams(strings.ToLower(a))
	setB := trigrams(strings.ToLower(b))
	return jaccard(setA, setB, strings.EqualFold(a, b))
}

// ContainsFold reports whether s contains substr under case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// wordTrigrams returns the union of the trigram sets of every word token.
func wordTrigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokenize(s) {
		addTrigrams(set, token)
	}
	return set
}

// trigrams returns the set of overlapping 3-character substrings.
func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	addTrigrams(set, s)
	return set
}

func addTrigrams(set map[string]struct{}, s string) {
	runes := []rune(s)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
}

// jaccard computes |intersection| / |union|. Strings too short to produce
// any trigrams yield empty sets; those compare equal only when the
// original strings were equal, keeping the measure total over all input.
func jaccard(setA, setB map[string]struct{}, equal bool) float64 {
	if len(setA) == 0 && len(setB) == 0 {
		if equal {
			return 1.0
		}
		return 0.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
