package catalog

import (
	"strings"

	"github.com/andraskurtos/movie-recommender/internal/match"
)

// FindDuplicate scans existing entries for one that already represents the
// submitted movie. An entry is a duplicate when its title matches exactly
// under case folding and the year matches, or when the titles are nearly
// identical (word-level trigram similarity above similarityFloor), the
// year matches, and both poster references are non-empty and equal.
// The first matching entry wins; there is no ranking among duplicates.
func FindDuplicate(entries []Movie, title string, year int, posterURL string, similarityFloor float64) *Movie {
	for i := range entries {
		e := &entries[i]

		if strings.EqualFold(e.Title, title) && e.Year == year {
			return e
		}

		if e.Year == year &&
			e.PosterURL != "" && posterURL != "" && e.PosterURL == posterURL &&
			match.WordSimilarity(e.Title, title) > similarityFloor {
			return e
		}
	}
	return nil
}
