package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
)

// CatalogSource lists catalog entries in stable persisted order.
type CatalogSource interface {
	ListMovies(ctx context.Context) ([]catalog.Movie, error)
}

// Service runs ranked title search over the catalog.
type Service struct {
	source CatalogSource
	cfg    Config
	logger zerolog.Logger
}

// NewService creates a search service with the default thresholds.
func NewService(source CatalogSource, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		cfg:    DefaultConfig(),
		logger: logger.With().Str("component", "search").Logger(),
	}
}

// Search retrieves and ranks catalog entries matching query. An empty
// query returns an empty result, not an error; the only failure mode is
// the storage scan itself.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Movie, error) {
	entries, err := s.source.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog: %w", err)
	}

	candidates := Retrieve(entries, query, s.cfg)
	ranked := Rank(candidates, query, s.cfg)

	s.logger.Debug().
		Str("query", query).
		Int("candidates", len(candidates)).
		Int("results", len(ranked)).
		Msg("search completed")

	return ranked, nil
}
