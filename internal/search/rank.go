package search

import (
	"sort"
	"strings"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/match"
)

// tierScore holds the per-tier match scores for one candidate. Ordering
// compares tiers lexicographically, so any exact-title match outranks
// every candidate without one regardless of lower-tier scores.
type tierScore struct {
	exactOriginal int
	exactCleaned  int
	prefix        int
	contains      int
}

func (a tierScore) less(b tierScore) bool {
	if a.exactOriginal != b.exactOriginal {
		return a.exactOriginal < b.exactOriginal
	}
	if a.exactCleaned != b.exactCleaned {
		return a.exactCleaned < b.exactCleaned
	}
	if a.prefix != b.prefix {
		return a.prefix < b.prefix
	}
	return a.contains < b.contains
}

// Rank orders candidates by tiered match quality against rawQuery and
// truncates to cfg.MaxResults. The sort is stable, so ties keep the
// candidates' retrieval order, which follows the persisted catalog order.
// The whole candidate set is scored before truncation; a top-tier match
// can sit anywhere in the input.
func Rank(candidates []catalog.Movie, rawQuery string, cfg Config) []catalog.Movie {
	cleaned := match.Normalize(rawQuery)
	original := strings.ToLower(rawQuery)

	scores := make([]tierScore, len(candidates))
	for i, e := range candidates {
		scores[i] = scoreCandidate(e.Title, cleaned, original, cfg)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[j]].less(scores[order[i]])
	})

	limit := cfg.MaxResults
	if limit > len(order) {
		limit = len(order)
	}

	ranked := make([]catalog.Movie, 0, limit)
	for _, idx := range order[:limit] {
		ranked = append(ranked, candidates[idx])
	}
	return ranked
}

func scoreCandidate(title, cleaned, original string, cfg Config) tierScore {
	lowered := strings.ToLower(title)

	var s tierScore
	if lowered == original {
		s.exactOriginal = cfg.ExactOriginalScore
	}
	// The title is normalized independently of the query so that two
	// stopword-stripped titles compare symmetrically.
	if match.Normalize(title) == cleaned {
		s.exactCleaned = cfg.ExactCleanedScore
	}
	if strings.HasPrefix(lowered, cleaned) {
		s.prefix = cfg.PrefixScore
	}
	if strings.Contains(lowered, cleaned) {
		s.contains = cfg.ContainsScore
		if cleaned != original && strings.Contains(lowered, original) {
			s.contains += cfg.RawContainsBonus
		}
	}
	return s
}
