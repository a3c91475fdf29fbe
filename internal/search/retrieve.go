package search

import (
	"strings"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/match"
)

// Retrieve scans the catalog entries and returns those passing the
// similarity and containment thresholds for rawQuery, in their original
// order. The stopword-stripped query is the primary probe with the loose
// floors; when stripping changed the text, the raw lowercased query is
// kept as a second probe behind a much stricter floor, covering queries
// that are meaningful only with their stopwords intact. An empty or
// whitespace query, or no entry passing any threshold, yields an empty
// result; there is no fallback to the full catalog.
func Retrieve(entries []catalog.Movie, rawQuery string, cfg Config) []catalog.Movie {
	if strings.TrimSpace(rawQuery) == "" {
		return nil
	}

	cleaned := match.Normalize(rawQuery)
	original := strings.ToLower(rawQuery)
	probeBoth := cleaned != original

	var candidates []catalog.Movie
	for _, e := range entries {
		if isCandidate(e.Title, cleaned, original, probeBoth, cfg) {
			candidates = append(candidates, e)
		}
	}
	return candidates
}

func isCandidate(title, cleaned, original string, probeBoth bool, cfg Config) bool {
	if match.WordSimilarity(title, cleaned) > cfg.CleanedWordFloor {
		return true
	}
	if match.StringSimilarity(title, cleaned) > cfg.CleanedStringFloor {
		return true
	}
	if match.ContainsFold(title, cleaned) {
		return true
	}
	if probeBoth {
		if match.WordSimilarity(title, original) > cfg.RawWordFloor {
			return true
		}
		if match.ContainsFold(title, original) {
			return true
		}
	}
	return false
}
