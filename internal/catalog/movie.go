// Package catalog provides the movie catalog: storage, CRUD, and
// duplicate suppression for newly submitted movies.
package catalog

import "time"

// Movie is a catalog entry.
type Movie struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Year              int       `json:"year"`
	PosterURL         string    `json:"posterUrl"`
	BackdropURL       string    `json:"backdropUrl"`
	OriginalLanguage  string    `json:"originalLanguage"`
	Overview          string    `json:"overview"`
	Runtime           int       `json:"runtime"`
	Tagline           string    `json:"tagline"`
	VoteAverage       float64   `json:"voteAverage"`
	ProductionCompany string    `json:"productionCompany"`
	Director          string    `json:"director"`
	Genres            []int64   `json:"genres"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateMovieInput is the payload for creating a movie. Genres carries
// TMDB genre ids, matching what the import tooling submits.
type CreateMovieInput struct {
	Title             string  `json:"title"`
	Year              int     `json:"year"`
	PosterURL         string  `json:"posterUrl"`
	BackdropURL       string  `json:"backdropUrl"`
	OriginalLanguage  string  `json:"originalLanguage"`
	Overview          string  `json:"overview"`
	Runtime           int     `json:"runtime"`
	Tagline           string  `json:"tagline"`
	VoteAverage       float64 `json:"voteAverage"`
	ProductionCompany string  `json:"productionCompany"`
	Director          string  `json:"director"`
	Genres            []int64 `json:"genres"`
}

// UpdateMovieInput carries optional field updates; nil fields are left
// unchanged.
type UpdateMovieInput struct {
	Title             *string  `json:"title"`
	Year              *int     `json:"year"`
	PosterURL         *string  `json:"posterUrl"`
	BackdropURL       *string  `json:"backdropUrl"`
	OriginalLanguage  *string  `json:"originalLanguage"`
	Overview          *string  `json:"overview"`
	Runtime           *int     `json:"runtime"`
	Tagline           *string  `json:"tagline"`
	VoteAverage       *float64 `json:"voteAverage"`
	ProductionCompany *string  `json:"productionCompany"`
	Director          *string  `json:"director"`
	Genres            []int64  `json:"genres"`
}

// Config holds tunable thresholds for duplicate detection. The similarity
// floor is an empirically chosen value carried over from the original
// system; it is configuration, not a derived constant.
type Config struct {
	// DuplicateSimilarityFloor is the word-level trigram similarity above
	// which two titles with matching year and poster are considered the
	// same movie. Default: 0.8.
	DuplicateSimilarityFloor float64
}

// DefaultConfig returns the default catalog thresholds.
func DefaultConfig() Config {
	return Config{
		DuplicateSimilarityFloor: 0.8,
	}
}
