// Package match provides title normalization and approximate string
// similarity used by search, duplicate detection, and recommendation
// reconciliation.
package match

import (
	"regexp"
	"strings"
)

var tokenSplitRegex = regexp.MustCompile(`\W+`)

// stopwords is the fixed set of English function words stripped during
// normalization.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "no": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "such": {}, "that": {}, "the": {}, "their": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"to": {}, "was": {}, "will": {}, "with": {},
}

// Normalize converts text to a canonical lowercase form for comparison.
// It lowercases, splits on non-word characters, and drops stopwords.
// If stripping would remove every token the lowercased input is returned
// unchanged, so short titles made entirely of stopwords ("It", "The Then")
// never collapse to an empty string. Normalize is idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	kept := make([]string, 0, 8)
	for _, token := range tokenSplitRegex.Split(lowered, -1) {
		if token == "" {
			continue
		}
		if _, isStopword := stopwords[token]; isStopword {
			continue
		}
		kept = append(kept, token)
	}

	if len(kept) == 0 {
		return lowered
	}
	return strings.Join(kept, " ")
}

// ArticleNormalize lowercases a title and rotates a trailing ", the",
// ", a", or ", an" to the front, so "Matrix, The" and "The Matrix"
// normalize to the same string. Used when reconciling recommender output
// against the catalog, not for search.
func ArticleNormalize(title string) string {
	title = strings.ToLower(title)

	if strings.HasSuffix(title, ", the") {
		return "the " + title[:len(title)-5]
	}
	if strings.HasSuffix(title, ", a") {
		return "a " + title[:len(title)-3]
	}
	if strings.HasSuffix(title, ", an") {
		return "an " + title[:len(title)-4]
	}

	return title
}

// Tokenize splits text into lowercase word tokens.
func Tokenize(text string) []string {
	var tokens []string
	for _, token := range tokenSplitRegex.Split(strings.ToLower(text), -1) {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
