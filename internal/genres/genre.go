// Package genres manages the genre taxonomy and its movie links.
package genres

// Genre is a taxonomy entry keyed by the upstream TMDB genre id.
type Genre struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	TmdbID   int64   `json:"tmdbId"`
	MovieIDs []int64 `json:"movieIds"`
}

// CreateGenreInput carries the fields accepted when creating a genre.
type CreateGenreInput struct {
	Name   string `json:"name"`
	TmdbID int64  `json:"tmdbId"`
}
