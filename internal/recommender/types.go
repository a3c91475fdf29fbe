// Package recommender bridges the catalog to an external prediction
// process and reconciles its title hints back onto catalog entries.
package recommender

import "github.com/andraskurtos/movie-recommender/internal/catalog"

// Hint is one suggestion from the prediction process. Titles are free
// text from the recommender's own corpus and carry no catalog identity.
type Hint struct {
	Title           string  `json:"title"`
	Year            *int    `json:"year"`
	PredictedRating float64 `json:"predicted_rating"`
}

// RatingEntry is one rated title sent to the prediction process, with
// the rating on its 0.5-5 scale.
type RatingEntry struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
}

// RecommendedMovie pairs a reconciled catalog entry with its predicted
// rating.
type RecommendedMovie struct {
	Movie           catalog.Movie `json:"movie"`
	PredictedRating float64       `json:"predictedRating"`
}
