// Package search implements ranked fuzzy title search over the movie
// catalog: candidate retrieval by trigram similarity and substring
// containment, followed by deterministic tiered ranking.
package search

// Config holds the retrieval thresholds and ranking tier scores. The
// values are empirically tuned against the trigram Jaccard measure and
// carried over unchanged for compatibility; they are configuration, not
// derived constants.
type Config struct {
	// CleanedWordFloor is the word-level similarity a title must exceed
	// against the stopword-stripped query. Default: 0.3.
	CleanedWordFloor float64
	// CleanedStringFloor is the whole-string similarity a title must
	// exceed against the stopword-stripped query. Default: 0.3.
	CleanedStringFloor float64
	// RawWordFloor is the stricter word-level similarity floor applied to
	// the raw lowercased query when it differs from the cleaned one.
	// Default: 0.6.
	RawWordFloor float64

	// Tier scores, highest tier first. Each tier strictly dominates every
	// tier below it in the final ordering.
	ExactOriginalScore int // lowercased title equals lowercased raw query. Default: 1000.
	ExactCleanedScore  int // normalized title equals normalized query. Default: 800.
	PrefixScore        int // lowercased title starts with the cleaned query. Default: 500.
	ContainsScore      int // lowercased title contains the cleaned query. Default: 300.
	RawContainsBonus   int // title also contains the raw query when it differs. Default: 150.

	// MaxResults caps the ranked output. Default: 30.
	MaxResults int
}

// DefaultConfig returns the thresholds and tier scores used in production.
func DefaultConfig() Config {
	return Config{
		CleanedWordFloor:   0.3,
		CleanedStringFloor: 0.3,
		RawWordFloor:       0.6,

		ExactOriginalScore: 1000,
		ExactCleanedScore:  800,
		PrefixScore:        500,
		ContainsScore:      300,
		RawContainsBonus:   150,

		MaxResults: 30,
	}
}
