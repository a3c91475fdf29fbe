package recommender

import (
	"regexp"
	"strings"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/match"
)

// yearSuffixRegex matches a trailing " (1999)" style year tag some
// recommender corpora bake into titles.
var yearSuffixRegex = regexp.MustCompile(`\s+\(\d{4}\)$`)

// Reconcile maps recommendation hints onto catalog entries. A hint
// matches the first entry with the same year whose article-normalized
// title equals the hint's article-normalized title; a hint with no year
// matches only entries without a recorded year. Hints that match nothing
// are dropped. Hints are never merged, so a repeated hint yields a
// repeated entry.
func Reconcile(hints []Hint, entries []catalog.Movie) []RecommendedMovie {
	out := make([]RecommendedMovie, 0, len(hints))

	for _, hint := range hints {
		title := strings.TrimSpace(yearSuffixRegex.ReplaceAllString(hint.Title, ""))
		normalized := match.ArticleNormalize(title)

		year := 0
		if hint.Year != nil {
			year = *hint.Year
		}

		for _, entry := range entries {
			if entry.Year != year {
				continue
			}
			if match.ArticleNormalize(entry.Title) == normalized {
				out = append(out, RecommendedMovie{Movie: entry, PredictedRating: hint.PredictedRating})
				break
			}
		}
	}

	return out
}
